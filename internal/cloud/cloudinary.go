package cloud

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const uploadFolder = "uploads"

// UploadResult is the subset of cloudinary's response the app stores.
type UploadResult struct {
	URL      string
	PublicID string
}

// Uploader wraps the cloudinary SDK behind the two operations the app
// needs: upload an image and destroy it again.
type Uploader struct {
	cld *cloudinary.Cloudinary
}

// NewUploader builds an uploader from a CLOUDINARY_URL style string.
// Returns nil when the URL is empty so callers can treat uploads as
// unconfigured rather than failing at startup.
func NewUploader(cloudinaryURL string) (*Uploader, error) {
	if cloudinaryURL == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &Uploader{cld: cld}, nil
}

func (u *Uploader) Upload(ctx context.Context, file io.Reader) (UploadResult, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: uploadFolder})
	if err != nil {
		return UploadResult{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	return UploadResult{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

func (u *Uploader) Destroy(ctx context.Context, publicID string) error {
	resp, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: %s", resp.Result)
	}
	return nil
}
