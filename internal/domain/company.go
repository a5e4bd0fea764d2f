package domain

import "time"

type Company struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description Blocks    `json:"description"`
	Images      Images    `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
