package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"shopadmin/internal/config"
)

// Object is a file handed to a backend for persistence.
type Object struct {
	// Prefix groups objects by owning resource, e.g. "products".
	Prefix      string
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// StoredFile locates a persisted object. Key is backend specific and is what
// Delete expects back.
type StoredFile struct {
	Key string
	URL string
}

type Storage interface {
	Save(ctx context.Context, obj Object) (StoredFile, error)
	Delete(ctx context.Context, key string) error
}

// New builds the backend selected by cfg.Backend.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Backend {
	case config.StorageLocal:
		return NewLocal(cfg.LocalDir, cfg.PublicURL)
	case config.StorageS3:
		return NewS3(ctx, cfg.S3)
	case config.StorageCloudinary:
		return NewCloudinary(cfg.Cloudinary)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// objectKey builds a collision-resistant key that keeps the original
// extension.
func objectKey(prefix, original string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(original)))
	if ext == "" || len(ext) > 10 {
		ext = ".bin"
	}
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
