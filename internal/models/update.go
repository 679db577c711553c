package models

import (
	"time"

	"github.com/google/uuid"
)

// UpdateEntry is a dated changelog line shown on the portal front page.
type UpdateEntry struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Date      time.Time `db:"date" json:"date" validate:"required"`
	Body      string    `db:"body" json:"body" validate:"required"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewUpdateEntry builds a changelog entry with a fresh ID.
func NewUpdateEntry(date time.Time, body string) *UpdateEntry {
	return &UpdateEntry{
		ID:        uuid.New(),
		Date:      date,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
}
