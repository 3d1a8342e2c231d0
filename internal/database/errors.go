package database

import "fmt"

// Failure taxonomy for the transactional operations. Handlers map these
// onto HTTP status codes: NotFoundError -> 404, ValidationError -> 400,
// ConflictError -> 409 (or 400 for re-cancelling, matching the API table).

type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
