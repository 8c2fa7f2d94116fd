package cloudinary

import (
	"context"
	"errors"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Client wraps Cloudinary uploads. Kept as an interface so handlers can
// be exercised without network access.
type Client interface {
	UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (url string, err error)
}

type client struct {
	cld *cloudinary.Cloudinary
}

// NewClientFromParams builds a client from explicit credentials. Returns
// an error when credentials are missing so the caller can run without
// uploads in development.
func NewClientFromParams(cloudName, apiKey, apiSecret string) (Client, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary: missing credentials")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &client{cld: cld}, nil
}

func (c *client) UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	resp, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
