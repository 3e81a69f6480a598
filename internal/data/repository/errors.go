package repository

import "errors"

var (
	// ErrCapacityExceeded means a conditional occupancy update matched no
	// row because another request filled the unit first or changed who a
	// shared room can take.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrConcurrentUpdate means a compare-and-set write lost a race.
	ErrConcurrentUpdate = errors.New("record was modified concurrently")
)
