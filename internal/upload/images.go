package upload

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopadmin/internal/domain"
	apperrors "shopadmin/internal/errors"
	"shopadmin/internal/infrastructure/metrics"
	"shopadmin/internal/infrastructure/storage"
)

// ImageManager writes uploaded images to storage and removes them again.
type ImageManager struct {
	store  storage.Storage
	logger *zap.Logger
}

func NewImageManager(store storage.Storage, logger *zap.Logger) *ImageManager {
	return &ImageManager{store: store, logger: logger}
}

// Store saves every file under prefix. When one save fails the files saved
// before it are discarded and the error is returned.
func (m *ImageManager) Store(ctx context.Context, prefix string, files []*File) (domain.Images, error) {
	images := make(domain.Images, 0, len(files))
	for _, f := range files {
		img, err := m.storeOne(ctx, prefix, f)
		if err != nil {
			m.Discard(ctx, images...)
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func (m *ImageManager) storeOne(ctx context.Context, prefix string, f *File) (domain.Image, error) {
	src, err := f.Open()
	if err != nil {
		return domain.Image{}, fmt.Errorf("opening upload %s: %w", f.Name, err)
	}
	defer src.Close()

	stored, err := m.store.Save(ctx, storage.Object{
		Prefix:      prefix,
		Name:        f.Name,
		ContentType: f.ContentType,
		Size:        f.Size,
		Body:        src,
	})
	if err != nil {
		return domain.Image{}, apperrors.NewInternalError("failed to store uploaded image", fmt.Errorf("storing %s: %w", f.Name, err))
	}

	metrics.FilesStored.WithLabelValues(prefix).Inc()
	return domain.Image{ID: uuid.NewString(), URL: stored.URL, Key: stored.Key}, nil
}

// Discard deletes stored objects. Failures are logged and never returned;
// the records pointing at them are already gone.
func (m *ImageManager) Discard(ctx context.Context, images ...domain.Image) {
	ctx = context.WithoutCancel(ctx)
	for _, img := range images {
		if img.Key == "" {
			continue
		}
		if err := m.store.Delete(ctx, img.Key); err != nil {
			metrics.FilesDeleted.WithLabelValues("failed").Inc()
			m.logger.Warn("failed to delete stored image",
				zap.String("key", img.Key),
				zap.String("url", img.URL),
				zap.Error(err),
			)
			continue
		}
		metrics.FilesDeleted.WithLabelValues("deleted").Inc()
	}
}

// Remove drops the images whose id or url is listed in deleted.
func Remove(current domain.Images, deleted []string) (kept, removed domain.Images) {
	drop := make(map[string]bool, len(deleted))
	for _, ref := range deleted {
		drop[ref] = true
	}

	kept = domain.Images{}
	for _, img := range current {
		if drop[img.ID] || drop[img.URL] {
			removed = append(removed, img)
			continue
		}
		kept = append(kept, img)
	}
	return kept, removed
}

// Retain keeps the current images listed in refs, in the order of refs.
// Refs that match no current image are ignored.
func Retain(current domain.Images, refs []string) (kept, removed domain.Images) {
	used := make([]bool, len(current))
	kept = domain.Images{}
	for _, ref := range refs {
		for i, img := range current {
			if !used[i] && (img.ID == ref || img.URL == ref) {
				used[i] = true
				kept = append(kept, img)
				break
			}
		}
	}

	for i, img := range current {
		if !used[i] {
			removed = append(removed, img)
		}
	}
	return kept, removed
}
