package usecase

import (
	"errors"
	"fmt"

	"event-logistics/internal/data/repository"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	ErrCapacityExceeded = repository.ErrCapacityExceeded
	ErrConcurrentUpdate = repository.ErrConcurrentUpdate
)

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q is not a valid UUID", ErrInvalidInput, field, value)
	}
	return id, nil
}

func parseIDs(field string, values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := parseID(field, v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
