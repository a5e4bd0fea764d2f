package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ContactFields is the free-form set of contact values (phone, email,
// address, social links) stored as one JSON object.
type ContactFields map[string]string

func (f ContactFields) Value() (driver.Value, error) {
	if f == nil {
		return "{}", nil
	}
	data, err := json.Marshal(map[string]string(f))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (f *ContactFields) Scan(value interface{}) error {
	raw, err := rawJSON(value)
	if err != nil {
		return fmt.Errorf("domain.ContactFields: %w", err)
	}
	out := ContactFields{}
	if raw != "" && raw != "null" {
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return fmt.Errorf("domain.ContactFields: %w", err)
		}
	}
	*f = out
	return nil
}

type Contact struct {
	ID        int
	Fields    ContactFields
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MarshalJSON flattens the fields next to the id.
func (c Contact) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(c.Fields)+3)
	for k, v := range c.Fields {
		out[k] = v
	}
	out["id"] = c.ID
	out["createdAt"] = c.CreatedAt
	out["updatedAt"] = c.UpdatedAt
	return json.Marshal(out)
}
