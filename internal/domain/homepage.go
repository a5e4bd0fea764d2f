package domain

import "time"

type Homepage struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Images          Images    `json:"images"`
	PopularProducts IDList    `json:"popularProducts"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
