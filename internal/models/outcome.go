package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// OutcomeRecord is an immutable historical fact: one draw and how it settled.
// Records are created by admin actions and only ever mutated via a bulk
// replace of the whole list.
type OutcomeRecord struct {
	ID        uuid.UUID `db:"id" json:"id"`
	DrawnAt   time.Time `db:"drawn_at" json:"drawn_at" validate:"required"`
	Result    Category  `db:"result" json:"result" validate:"required"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewOutcomeRecord builds a record with a fresh ID.
func NewOutcomeRecord(drawnAt time.Time, result Category) *OutcomeRecord {
	return &OutcomeRecord{
		ID:        uuid.New(),
		DrawnAt:   drawnAt,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
}

// SortOutcomesByDrawTime orders records oldest first, the order trend series
// are computed in. The sort is stable so same-timestamp records keep their
// insertion order.
func SortOutcomesByDrawTime(records []*OutcomeRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DrawnAt.Before(records[j].DrawnAt)
	})
}
