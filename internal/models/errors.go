package models

import "errors"

// Custom errors
var (
	ErrNotFound         = errors.New("record not found")
	ErrEmptyCategorySet = errors.New("category set is empty")
	ErrUnknownCategory  = errors.New("category not in configured set")
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrUpdateBodyEmpty  = errors.New("update body is required")
)
