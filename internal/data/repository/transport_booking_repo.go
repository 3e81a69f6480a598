package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-logistics/internal/data/entity"
	"event-logistics/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingFilter struct {
	Status      *entity.BookingStatus
	BookingType *entity.BookingType
	Limit       int
	Offset      int
}

type TransportBookingRepository interface {
	// Create inserts b. When poolWith is set, the targets join b's pool group
	// in the same transaction; a target that has since finished or vanished
	// aborts the insert with ErrConcurrentUpdate.
	Create(ctx context.Context, b *entity.TransportBooking, poolWith []uuid.UUID) error
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*entity.TransportBooking, error)
	FindByIDs(ctx context.Context, tenantID string, ids []uuid.UUID) ([]entity.TransportBooking, error)
	List(ctx context.Context, tenantID string, filter BookingFilter) ([]entity.TransportBooking, int64, error)
	// FindPoolCandidates returns live bookings of type bt scheduled in [from, to].
	FindPoolCandidates(ctx context.Context, tenantID string, bt entity.BookingType, from, to time.Time) ([]entity.TransportBooking, error)
	// UpdateStatus persists b if its stored status is still from and records
	// the history entry in the same transaction.
	UpdateStatus(ctx context.Context, b *entity.TransportBooking, from entity.BookingStatus, update entity.StatusUpdate) error
	DeletePending(ctx context.Context, tenantID string, id uuid.UUID) error
	History(ctx context.Context, tenantID string, bookingID uuid.UUID) ([]entity.StatusUpdate, error)
}

type transportBookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTransportBookingRepository(db database.PgxIface, log *zap.Logger) TransportBookingRepository {
	return &transportBookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "transport_booking")),
	}
}

const bookingColumns = `id, tenant_id, booking_type, status, event_id, participant_ids, pickup_locations, destination,
	scheduled_time, arrival_time, flight_number, has_welcome_package, package_pickup_location, package_collected,
	vendor_type, vendor_name, driver_name, driver_phone, vehicle_details, special_instructions, pool_group_id,
	created_by, created_at, updated_at`

func (r *transportBookingRepository) Create(ctx context.Context, b *entity.TransportBooking, poolWith []uuid.UUID) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO transport_bookings (` + bookingColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		`
		_, err := tx.Exec(ctx, query,
			b.ID, b.TenantID, b.BookingType, b.Status, b.EventID, b.ParticipantIDs, b.PickupLocations, b.Destination,
			b.ScheduledTime, b.ArrivalTime, b.FlightNumber, b.HasWelcomePackage, b.PackagePickupLocation, b.PackageCollected,
			b.VendorType, b.VendorName, b.DriverName, b.DriverPhone, b.VehicleDetails, b.SpecialInstructions, b.PoolGroupID,
			b.CreatedBy, b.CreatedAt, b.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert transport booking: %w", err)
		}

		if len(poolWith) == 0 {
			return nil
		}
		if b.PoolGroupID == nil {
			return fmt.Errorf("pool targets given without a pool group")
		}

		tag, err := tx.Exec(ctx, `
			UPDATE transport_bookings
			SET pool_group_id = $3, updated_at = $4
			WHERE tenant_id = $1 AND id = ANY($2) AND status NOT IN ('completed', 'cancelled')
		`, b.TenantID, poolWith, *b.PoolGroupID, b.UpdatedAt)
		if err != nil {
			return fmt.Errorf("join pool group: %w", err)
		}
		if tag.RowsAffected() != int64(len(poolWith)) {
			return fmt.Errorf("%w: %d of %d pool targets still open", ErrConcurrentUpdate, tag.RowsAffected(), len(poolWith))
		}
		return nil
	})

	if err != nil && !errors.Is(err, ErrConcurrentUpdate) {
		r.log.Error("Failed to create transport booking",
			zap.Error(err),
			zap.String("booking_id", b.ID.String()),
			zap.String("booking_type", string(b.BookingType)),
		)
	}
	return err
}

func (r *transportBookingRepository) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*entity.TransportBooking, error) {
	query := `SELECT ` + bookingColumns + ` FROM transport_bookings WHERE tenant_id = $1 AND id = $2`

	rows, err := r.db.Query(ctx, query, tenantID, id)
	if err != nil {
		r.log.Error("Failed to find transport booking by ID", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("find transport booking %s: %w", id, err)
	}
	bookings, err := r.scan(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, nil
	}
	return &bookings[0], nil
}

func (r *transportBookingRepository) FindByIDs(ctx context.Context, tenantID string, ids []uuid.UUID) ([]entity.TransportBooking, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + bookingColumns + ` FROM transport_bookings WHERE tenant_id = $1 AND id = ANY($2)`

	rows, err := r.db.Query(ctx, query, tenantID, ids)
	if err != nil {
		r.log.Error("Failed to find transport bookings by IDs", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find transport bookings by IDs: %w", err)
	}
	return r.scan(rows)
}

func (r *transportBookingRepository) List(ctx context.Context, tenantID string, filter BookingFilter) ([]entity.TransportBooking, int64, error) {
	where := `
		WHERE tenant_id = $1
		  AND ($2::text IS NULL OR status = $2)
		  AND ($3::text IS NULL OR booking_type = $3)
	`

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transport_bookings`+where,
		tenantID, filter.Status, filter.BookingType).Scan(&total); err != nil {
		r.log.Error("Failed to count transport bookings", zap.Error(err), zap.String("tenant_id", tenantID))
		return nil, 0, fmt.Errorf("count transport bookings: %w", err)
	}

	query := `SELECT ` + bookingColumns + ` FROM transport_bookings` + where + `
		ORDER BY scheduled_time ASC, id ASC
		LIMIT $4 OFFSET $5
	`
	rows, err := r.db.Query(ctx, query, tenantID, filter.Status, filter.BookingType, filter.Limit, filter.Offset)
	if err != nil {
		r.log.Error("Failed to list transport bookings",
			zap.Error(err),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, 0, fmt.Errorf("list transport bookings: %w", err)
	}
	bookings, err := r.scan(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *transportBookingRepository) FindPoolCandidates(ctx context.Context, tenantID string, bt entity.BookingType, from, to time.Time) ([]entity.TransportBooking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM transport_bookings
		WHERE tenant_id = $1
		  AND booking_type = $2
		  AND status NOT IN ('completed', 'cancelled')
		  AND scheduled_time BETWEEN $3 AND $4
		ORDER BY scheduled_time ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, tenantID, bt, from, to)
	if err != nil {
		r.log.Error("Failed to find pool candidates", zap.Error(err), zap.String("booking_type", string(bt)))
		return nil, fmt.Errorf("find pool candidates: %w", err)
	}
	return r.scan(rows)
}

func (r *transportBookingRepository) UpdateStatus(ctx context.Context, b *entity.TransportBooking, from entity.BookingStatus, update entity.StatusUpdate) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE transport_bookings
			SET status = $4, package_collected = $5, updated_at = $6
			WHERE tenant_id = $1 AND id = $2 AND status = $3
		`, b.TenantID, b.ID, from, b.Status, b.PackageCollected, b.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update booking status: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: booking %s is no longer %s", ErrConcurrentUpdate, b.ID, from)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO transport_status_history (id, tenant_id, booking_id, from_status, to_status, location, notes, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, update.ID, b.TenantID, update.BookingID, update.FromStatus, update.ToStatus,
			update.Location, update.Notes, update.CreatedBy, update.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert status history: %w", err)
		}
		return nil
	})

	if err != nil && !errors.Is(err, ErrConcurrentUpdate) {
		r.log.Error("Failed to update transport booking status",
			zap.Error(err),
			zap.String("booking_id", b.ID.String()),
			zap.String("to_status", string(b.Status)),
		)
	}
	return err
}

func (r *transportBookingRepository) DeletePending(ctx context.Context, tenantID string, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM transport_bookings
		WHERE tenant_id = $1 AND id = $2 AND status = 'pending'
	`, tenantID, id)
	if err != nil {
		r.log.Error("Failed to delete transport booking", zap.Error(err), zap.String("booking_id", id.String()))
		return fmt.Errorf("delete transport booking %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: booking %s is no longer pending", ErrConcurrentUpdate, id)
	}
	return nil
}

func (r *transportBookingRepository) History(ctx context.Context, tenantID string, bookingID uuid.UUID) ([]entity.StatusUpdate, error) {
	query := `
		SELECT id, booking_id, from_status, to_status, location, notes, created_by, created_at
		FROM transport_status_history
		WHERE tenant_id = $1 AND booking_id = $2
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, tenantID, bookingID)
	if err != nil {
		r.log.Error("Failed to load status history", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return nil, fmt.Errorf("load status history for %s: %w", bookingID, err)
	}
	defer rows.Close()

	var history []entity.StatusUpdate
	for rows.Next() {
		var u entity.StatusUpdate
		if err := rows.Scan(&u.ID, &u.BookingID, &u.FromStatus, &u.ToStatus, &u.Location, &u.Notes, &u.CreatedBy, &u.CreatedAt); err != nil {
			r.log.Error("Failed to scan status history row", zap.Error(err))
			return nil, fmt.Errorf("scan status history row: %w", err)
		}
		history = append(history, u)
	}
	return history, rows.Err()
}

func (r *transportBookingRepository) scan(rows pgx.Rows) ([]entity.TransportBooking, error) {
	defer rows.Close()

	var bookings []entity.TransportBooking
	for rows.Next() {
		var b entity.TransportBooking
		err := rows.Scan(
			&b.ID, &b.TenantID, &b.BookingType, &b.Status, &b.EventID, &b.ParticipantIDs, &b.PickupLocations, &b.Destination,
			&b.ScheduledTime, &b.ArrivalTime, &b.FlightNumber, &b.HasWelcomePackage, &b.PackagePickupLocation, &b.PackageCollected,
			&b.VendorType, &b.VendorName, &b.DriverName, &b.DriverPhone, &b.VehicleDetails, &b.SpecialInstructions, &b.PoolGroupID,
			&b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan transport booking row", zap.Error(err))
			return nil, fmt.Errorf("scan transport booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transport booking rows: %w", err)
	}
	return bookings, nil
}
