package domain

import "time"

// TextPage is a titled sequence of text blocks. Partnership terms and payment
// info are both stored this way.
type TextPage struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Text      Blocks    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
