package domain

import "time"

type FAQ struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description Blocks    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
