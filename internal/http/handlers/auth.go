package handlers

import (
	"net/http"
	"strconv"

	"github.com/stevenadel/iti-events-server/internal/repositories"
	"github.com/stevenadel/iti-events-server/internal/services"
	"github.com/stevenadel/iti-events-server/internal/utils"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Birthdate string `json:"birthdate"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func authService(c *gin.Context) services.AuthService {
	env := envConfig()
	email := services.NewEmailService(env.ResendAPIKey, env.EmailFrom)
	email.RequestID = requestID(c)
	if !env.EmailEnabled {
		email.Enabled = false
	}
	return services.AuthService{
		Users:            repositories.UserRepository{},
		Tokens:           repositories.UserTokenRepository{},
		Env:              env,
		RequestID:        requestID(c),
		SendVerification: email.SendVerification,
	}
}

// POST /api/v1/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	birthdate, err := utils.ParseDate(req.Birthdate)
	if err != nil && req.Birthdate != "" {
		RespondError(c, http.StatusBadRequest, "Birthdate must be in YYYY-MM-DD format")
		return
	}

	user, tokens, err := authService(c).Register(req.FirstName, req.LastName, birthdate, req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":         user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

// POST /api/v1/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	tokens, err := authService(c).Login(req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// POST /api/v1/auth/refresh
func Refresh(c *gin.Context) {
	var req refreshRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.RefreshToken == "" {
		RespondError(c, http.StatusBadRequest, "Refresh token is required")
		return
	}

	accessToken, err := authService(c).Refresh(req.RefreshToken)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// GET /api/v1/auth/verify?token=...&id=...
func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	userID, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if token == "" || err != nil || userID <= 0 {
		RespondError(c, http.StatusBadRequest, "Invalid verification link")
		return
	}

	if err := authService(c).VerifyEmail(userID, token); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}
