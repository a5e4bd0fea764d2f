package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Image is a stored file referenced by a record. Key is the storage-backend
// key and is never sent to clients.
type Image struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Key string `json:"-"`
}

// storedImage is the column representation, which keeps the key.
type storedImage struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Key string `json:"key"`
}

// Images is the JSON column type for image lists.
type Images []Image

func (im Images) Value() (driver.Value, error) {
	stored := make([]storedImage, len(im))
	for i, img := range im {
		stored[i] = storedImage(img)
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (im *Images) Scan(value interface{}) error {
	raw, err := rawJSON(value)
	if err != nil {
		return fmt.Errorf("domain.Images: %w", err)
	}
	if raw == "" || raw == "null" {
		*im = Images{}
		return nil
	}

	var stored []storedImage
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return fmt.Errorf("domain.Images: %w", err)
	}
	out := make(Images, len(stored))
	for i, s := range stored {
		out[i] = Image(s)
	}
	*im = out
	return nil
}

func (im Images) MarshalJSON() ([]byte, error) {
	if im == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Image(im))
}

// NullImage is a single optional image stored in a nullable JSON column.
type NullImage struct {
	Image Image
	Valid bool
}

func (n NullImage) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	data, err := json.Marshal(storedImage(n.Image))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (n *NullImage) Scan(value interface{}) error {
	raw, err := rawJSON(value)
	if err != nil {
		return fmt.Errorf("domain.NullImage: %w", err)
	}
	if raw == "" || raw == "null" {
		*n = NullImage{}
		return nil
	}

	var stored storedImage
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return fmt.Errorf("domain.NullImage: %w", err)
	}
	*n = NullImage{Image: Image(stored), Valid: true}
	return nil
}

func (n NullImage) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Image)
}
