package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"sync"

	"github.com/stevenadel/iti-events-server/internal/cloud"
	intconfig "github.com/stevenadel/iti-events-server/internal/config"
	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

var (
	cfgMu    sync.RWMutex
	cfgEnv   intconfig.Env
	uploader *cloud.Uploader
)

// Configure stores the runtime configuration handlers depend on. Called
// once from router setup.
func Configure(env intconfig.Env, up *cloud.Uploader) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	cfgEnv = env
	uploader = up
}

func envConfig() intconfig.Env {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return cfgEnv
}

func assetUploader() *cloud.Uploader {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return uploader
}

// RespondError sends the standard {message} error payload.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "Request body is required")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// ParseIDParam reads a positive numeric path parameter, answering 400 itself
// when the value is malformed.
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

// maxUploadBytes caps uploaded images at 10 MB.
const maxUploadBytes = 10 << 20

// uploadFormFile uploads an optional multipart file field to remote storage.
// Returns nil pointers when the field is absent or uploads are disabled.
func uploadFormFile(c *gin.Context, field string) (url, publicID *string, err error) {
	header, ferr := c.FormFile(field)
	if ferr != nil {
		return nil, nil, nil
	}
	if header.Size > maxUploadBytes {
		return nil, nil, domain.ValidationError{Msg: "Uploaded file must be at most 10 MB"}
	}
	up := assetUploader()
	if up == nil {
		return nil, nil, nil
	}

	var file multipart.File
	file, err = header.Open()
	if err != nil {
		return nil, nil, domain.InternalError{Msg: "Failed to upload " + field, Err: err}
	}
	defer file.Close()

	res, err := up.Upload(c.Request.Context(), file)
	if err != nil {
		return nil, nil, domain.InternalError{Msg: "Failed to upload " + field, Err: err}
	}
	return &res.URL, &res.PublicID, nil
}

// deleteAsset removes a remote asset. Safe to pass as a service callback
// even when uploads are disabled.
func deleteAsset(c *gin.Context) func(publicID string) error {
	return func(publicID string) error {
		up := assetUploader()
		if up == nil {
			return nil
		}
		return up.Destroy(c.Request.Context(), publicID)
	}
}

func requestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}
