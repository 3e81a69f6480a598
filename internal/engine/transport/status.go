package transport

import (
	"fmt"
	"slices"
	"time"

	"event-logistics/internal/data/entity"

	"github.com/google/uuid"
)

var transitions = map[entity.BookingStatus][]entity.BookingStatus{
	entity.BookingStatusPending: {
		entity.BookingStatusConfirmed,
		entity.BookingStatusCancelled,
	},
	entity.BookingStatusConfirmed: {
		entity.BookingStatusPackageCollected,
		entity.BookingStatusVisitorPickedUp,
		entity.BookingStatusCancelled,
	},
	entity.BookingStatusPackageCollected: {
		entity.BookingStatusVisitorPickedUp,
		entity.BookingStatusCancelled,
	},
	entity.BookingStatusVisitorPickedUp: {
		entity.BookingStatusInTransit,
		entity.BookingStatusCompleted,
		entity.BookingStatusCancelled,
	},
	entity.BookingStatusInTransit: {
		entity.BookingStatusCompleted,
		entity.BookingStatusCancelled,
	},
}

// NextStates lists the statuses reachable from current. Terminal and unknown
// statuses have none.
func NextStates(current entity.BookingStatus) []entity.BookingStatus {
	return slices.Clone(transitions[current])
}

func CanTransition(from, to entity.BookingStatus) bool {
	return slices.Contains(transitions[from], to)
}

// Terminal reports whether a status ends the booking lifecycle.
func Terminal(s entity.BookingStatus) bool {
	return s == entity.BookingStatusCompleted || s == entity.BookingStatusCancelled
}

func ValidStatus(s entity.BookingStatus) bool {
	_, ok := transitions[s]
	return ok || Terminal(s)
}

// TransitionMeta is the optional context recorded alongside a status change.
type TransitionMeta struct {
	Location *string
	Notes    *string
	Actor    string
	At       time.Time
	NewID    func() uuid.UUID
}

// Transition moves b to target and returns the updated booking with the
// history entry describing the move. b itself is left unchanged.
func Transition(b entity.TransportBooking, target entity.BookingStatus, meta TransitionMeta) (entity.TransportBooking, entity.StatusUpdate, error) {
	if !CanTransition(b.Status, target) {
		return b, entity.StatusUpdate{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, target)
	}
	if meta.At.IsZero() {
		meta.At = time.Now()
	}
	if meta.NewID == nil {
		meta.NewID = uuid.New
	}

	update := entity.StatusUpdate{
		BaseSimple: entity.BaseSimple{ID: meta.NewID(), CreatedAt: meta.At},
		BookingID:  b.ID,
		FromStatus: b.Status,
		ToStatus:   target,
		Location:   meta.Location,
		Notes:      meta.Notes,
		CreatedBy:  meta.Actor,
	}

	b.Status = target
	b.UpdatedAt = meta.At
	if target == entity.BookingStatusPackageCollected {
		b.PackageCollected = true
	}
	return b, update, nil
}

// CanDelete allows hard removal only while a booking is still pending.
func CanDelete(b entity.TransportBooking) error {
	if b.Status != entity.BookingStatusPending {
		return fmt.Errorf("%w: booking is %s", ErrCannotDeleteConfirmed, b.Status)
	}
	return nil
}
