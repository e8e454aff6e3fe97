package services

import "fmt"

// NotFoundError reports a referenced entity id that does not exist.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Resource, e.ID)
}

// ConflictError reports an attendance submission that would push a worker's
// same-day cross-project workload above one full day.
type ConflictError struct {
	Name      string
	OtherLoad float64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("Conflict: '%s' is already working %g day(s) at another site today.", e.Name, e.OtherLoad)
}
