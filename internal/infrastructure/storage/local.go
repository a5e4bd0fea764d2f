package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local keeps objects on disk under dir and serves them from publicURL.
type Local struct {
	dir       string
	publicURL string
}

func NewLocal(dir, publicURL string) (*Local, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving storage dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	return &Local{dir: abs, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// Dir is the root directory objects are written to.
func (l *Local) Dir() string {
	return l.dir
}

func (l *Local) Save(ctx context.Context, obj Object) (StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return StoredFile{}, err
	}

	key := objectKey(obj.Prefix, obj.Name)
	target := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return StoredFile{}, fmt.Errorf("creating object dir: %w", err)
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return StoredFile{}, fmt.Errorf("creating object file: %w", err)
	}
	if _, err := io.Copy(f, obj.Body); err != nil {
		f.Close()
		os.Remove(target)
		return StoredFile{}, fmt.Errorf("writing object file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(target)
		return StoredFile{}, fmt.Errorf("closing object file: %w", err)
	}

	return StoredFile{Key: key, URL: l.publicURL + "/" + key}, nil
}

// Delete removes the object. A missing object is not an error.
func (l *Local) Delete(ctx context.Context, key string) error {
	target, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing object file: %w", err)
	}
	return nil
}

func (l *Local) resolve(key string) (string, error) {
	target := filepath.Join(l.dir, filepath.FromSlash(key))
	rel, err := filepath.Rel(l.dir, target)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return target, nil
}
