// Package storage implements the binary store on Cloudinary.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore uploads files and hands back durable secure URLs.
type CloudinaryStore struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryStore builds a store from a CLOUDINARY_URL-style
// credential string.
func NewCloudinaryStore(credentialsURL string) (*CloudinaryStore, error) {
	client, err := cloudinary.NewFromURL(credentialsURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{client: client}, nil
}

// Put uploads the bytes under the given path and returns the durable
// reference. ResourceType auto lets images, PDFs, archives and audio
// share one upload path.
func (s *CloudinaryStore) Put(ctx context.Context, p string, r io.Reader) (string, error) {
	res, err := s.client.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       path.Dir(p),
		PublicID:     path.Base(p),
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return res.SecureURL, nil
}
