package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Blocks is an ordered list of text paragraphs stored in a JSON column.
type Blocks []string

func (b Blocks) Value() (driver.Value, error) {
	if b == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(b))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan tolerates a legacy plain-text value by treating it as a single block.
func (b *Blocks) Scan(value interface{}) error {
	raw, err := rawJSON(value)
	if err != nil {
		return fmt.Errorf("domain.Blocks: %w", err)
	}
	if raw == "" || raw == "null" {
		*b = Blocks{}
		return nil
	}

	var arr []string
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		*b = arr
		return nil
	}

	*b = Blocks{raw}
	return nil
}

// MarshalJSON never emits null so clients can always iterate.
func (b Blocks) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(b))
}

// UnmarshalJSON accepts an array of strings or a single string.
func (b *Blocks) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*b = compactBlocks(arr)
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("blocks must be a string or an array of strings")
	}
	*b = compactBlocks([]string{single})
	return nil
}

func compactBlocks(in []string) Blocks {
	out := Blocks{}
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// IDList is a list of integer ids stored in a JSON column.
type IDList []int

func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]int(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *IDList) Scan(value interface{}) error {
	raw, err := rawJSON(value)
	if err != nil {
		return fmt.Errorf("domain.IDList: %w", err)
	}
	if raw == "" || raw == "null" {
		*l = IDList{}
		return nil
	}

	var arr []int
	if err := json.Unmarshal([]byte(raw), &arr); err != nil {
		return fmt.Errorf("domain.IDList: %w", err)
	}
	*l = arr
	return nil
}

func (l IDList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(l))
}

func rawJSON(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case []byte:
		return strings.TrimSpace(string(v)), nil
	case string:
		return strings.TrimSpace(v), nil
	default:
		return "", fmt.Errorf("unsupported Scan type %T", value)
	}
}
