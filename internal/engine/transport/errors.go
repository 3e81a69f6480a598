// Package transport holds the transport booking rules: the status state
// machine, the pooling advisor and booking preparation. It performs no I/O.
package transport

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind string

const (
	KindInvalidTransition     ErrorKind = "INVALID_TRANSITION"
	KindCannotDeleteConfirmed ErrorKind = "CANNOT_DELETE_CONFIRMED"
	KindNoParticipants        ErrorKind = "NO_PARTICIPANTS"
	KindAirportSingle         ErrorKind = "AIRPORT_PICKUP_SINGLE_PARTICIPANT"
	KindMissingArrivalTime    ErrorKind = "MISSING_ARRIVAL_TIME"
	KindMissingScheduledTime  ErrorKind = "MISSING_SCHEDULED_TIME"
	KindMissingEvent          ErrorKind = "MISSING_EVENT"
	KindNoPickupLocations     ErrorKind = "NO_PICKUP_LOCATIONS"
	KindEmptyPickupLocation   ErrorKind = "EMPTY_PICKUP_LOCATION"
	KindPoolTargetInvalid     ErrorKind = "POOL_TARGET_INVALID"
)

var (
	ErrInvalidTransition     = errors.New(string(KindInvalidTransition))
	ErrCannotDeleteConfirmed = errors.New(string(KindCannotDeleteConfirmed))
)

type ValidationError struct {
	Kind    ErrorKind `json:"kind"`
	Subject string    `json:"subject,omitempty"`
	Message string    `json:"message"`
}

// ValidationErrors collects every rule a booking draft violates.
type ValidationErrors struct {
	Errors []ValidationError
}

func (e *ValidationErrors) Error() string {
	parts := make([]string, len(e.Errors))
	for i, v := range e.Errors {
		if v.Subject == "" {
			parts[i] = string(v.Kind)
			continue
		}
		parts[i] = fmt.Sprintf("%s(%s)", v.Kind, v.Subject)
	}
	return "transport booking invalid: " + strings.Join(parts, ", ")
}

func (e *ValidationErrors) Has(kind ErrorKind) bool {
	for _, v := range e.Errors {
		if v.Kind == kind {
			return true
		}
	}
	return false
}

func (e *ValidationErrors) add(kind ErrorKind, subject, format string, args ...any) {
	e.Errors = append(e.Errors, ValidationError{Kind: kind, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

func (e *ValidationErrors) orNil() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}
