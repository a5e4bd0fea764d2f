package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"shopadmin/internal/config"
)

type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// Cloudinary stores images on Cloudinary. The key is the asset public id.
type Cloudinary struct {
	api    cloudinaryAPI
	folder string
}

func NewCloudinary(cfg config.CloudinaryConfig) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("initializing cloudinary: %w", err)
	}
	return &Cloudinary{api: &cld.Upload, folder: strings.Trim(cfg.Folder, "/")}, nil
}

func (c *Cloudinary) Save(ctx context.Context, obj Object) (StoredFile, error) {
	key := objectKey(obj.Prefix, obj.Name)
	publicID := strings.TrimSuffix(key, path.Ext(key))
	if c.folder != "" {
		publicID = c.folder + "/" + publicID
	}

	resp, err := c.api.Upload(ctx, obj.Body, uploader.UploadParams{PublicID: publicID})
	if err != nil {
		return StoredFile{}, fmt.Errorf("uploading to cloudinary: %w", err)
	}
	if resp.Error.Message != "" {
		return StoredFile{}, fmt.Errorf("uploading to cloudinary: %s", resp.Error.Message)
	}

	return StoredFile{Key: resp.PublicID, URL: resp.SecureURL}, nil
}

func (c *Cloudinary) Delete(ctx context.Context, key string) error {
	resp, err := c.api.Destroy(ctx, uploader.DestroyParams{PublicID: key})
	if err != nil {
		return fmt.Errorf("deleting from cloudinary: %w", err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("deleting from cloudinary: %s", resp.Error.Message)
	}
	return nil
}
