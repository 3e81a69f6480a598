// Package allocation holds the accommodation constraint engine: gender
// compatibility, capacity tracking, request validation and room assignment.
// Everything here is pure and safe to call from any layer.
package allocation

import (
	"fmt"
	"strings"
)

type ErrorKind string

const (
	KindPastCheckIn              ErrorKind = "PAST_CHECKIN"
	KindInvalidDateRange         ErrorKind = "INVALID_DATE_RANGE"
	KindNoParticipants           ErrorKind = "NO_PARTICIPANTS"
	KindNoVendorSelected         ErrorKind = "NO_VENDOR_SELECTED"
	KindNoRoomType               ErrorKind = "NO_ROOM_TYPE"
	KindDoubleRoomOverflow       ErrorKind = "DOUBLE_ROOM_OVERFLOW"
	KindGenderMismatchDouble     ErrorKind = "GENDER_MISMATCH_DOUBLE"
	KindNoRoomsSelected          ErrorKind = "NO_ROOMS_SELECTED"
	KindInsufficientCapacity     ErrorKind = "INSUFFICIENT_CAPACITY"
	KindMissingGender            ErrorKind = "MISSING_GENDER"
	KindGenderConflict           ErrorKind = "GENDER_CONFLICT"
	KindParticipantNotFound      ErrorKind = "PARTICIPANT_NOT_FOUND"
	KindParticipantEventMismatch ErrorKind = "PARTICIPANT_EVENT_MISMATCH"
	KindAlreadyAllocated         ErrorKind = "ALREADY_ALLOCATED"
)

// ValidationError is one violated rule. Subject carries the participant or
// unit id the rule refers to, when there is one.
type ValidationError struct {
	Kind    ErrorKind `json:"kind"`
	Subject string    `json:"subject,omitempty"`
	Message string    `json:"message"`
}

func (e ValidationError) String() string {
	if e.Subject == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s(%s)", e.Kind, e.Subject)
}

// Result is the full validation report; an empty report means Ok.
type Result struct {
	Errors []ValidationError `json:"errors"`
}

func (r Result) OK() bool { return len(r.Errors) == 0 }

// Has reports whether any error of the given kind was collected.
func (r Result) Has(kind ErrorKind) bool {
	for _, e := range r.Errors {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func (r Result) Kinds() []ErrorKind {
	kinds := make([]ErrorKind, len(r.Errors))
	for i, e := range r.Errors {
		kinds[i] = e.Kind
	}
	return kinds
}

// Err returns nil for an Ok result and a *ValidationErrors otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &ValidationErrors{Errors: r.Errors}
}

func (r *Result) add(kind ErrorKind, subject, format string, args ...any) {
	for _, e := range r.Errors {
		if e.Kind == kind && e.Subject == subject {
			return
		}
	}
	r.Errors = append(r.Errors, ValidationError{
		Kind:    kind,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	})
}

// Add appends an error found outside the pure checks (store lookups).
func (r *Result) Add(kind ErrorKind, subject, message string) {
	r.add(kind, subject, "%s", message)
}

// ValidationErrors is the error form of a failed Result.
type ValidationErrors struct {
	Errors []ValidationError
}

func (e *ValidationErrors) Error() string {
	parts := make([]string, len(e.Errors))
	for i, v := range e.Errors {
		parts[i] = v.String()
	}
	return "allocation validation failed: " + strings.Join(parts, ", ")
}
