package domain

import "errors"

var (
	// ErrNotFound is returned when a project id has no stored record.
	ErrNotFound = errors.New("project not found")
)
