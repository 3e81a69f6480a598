package repository

import (
	"time"

	"event-logistics/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Participant      ParticipantRepository
	Vendor           VendorRepository
	Room             RoomRepository
	Allocation       AllocationRepository
	TransportBooking TransportBookingRepository
	WelcomePackage   WelcomePackageRepository
}

// NewRepository builds every repository on db. participantTTL controls the
// participant list cache; zero disables it.
func NewRepository(db database.PgxIface, participantTTL time.Duration, log *zap.Logger) *Repository {
	return &Repository{
		Participant:      NewCachedParticipantRepository(NewParticipantRepository(db, log), participantTTL, log),
		Vendor:           NewVendorRepository(db, log),
		Room:             NewRoomRepository(db, log),
		Allocation:       NewAllocationRepository(db, log),
		TransportBooking: NewTransportBookingRepository(db, log),
		WelcomePackage:   NewWelcomePackageRepository(db, log),
	}
}
