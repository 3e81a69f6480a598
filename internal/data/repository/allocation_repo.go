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

type AllocationRepository interface {
	// CreateWithOccupancy inserts allocations and applies their occupancy
	// deltas in one transaction. A delta its unit can no longer take, by
	// capacity or by the room gender rule, aborts everything with
	// ErrCapacityExceeded.
	CreateWithOccupancy(ctx context.Context, allocs []entity.Allocation, deltas []entity.OccupancyDelta) error
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*entity.Allocation, error)
	ListByEvent(ctx context.Context, tenantID string, eventID uuid.UUID) ([]entity.Allocation, error)
	ListActiveByRoom(ctx context.Context, tenantID string, roomID uuid.UUID) ([]entity.Allocation, error)
	// FindOverlapping returns live allocations holding any of the given
	// participants for a stay that intersects [checkIn, checkOut).
	FindOverlapping(ctx context.Context, tenantID string, participantIDs []uuid.UUID, checkIn, checkOut time.Time) ([]entity.Allocation, error)
	CheckIn(ctx context.Context, tenantID string, ids []uuid.UUID, at time.Time) (int64, error)
	// Cancel tombstones the allocation and releases its occupancy.
	Cancel(ctx context.Context, alloc entity.Allocation, release entity.OccupancyDelta) error
}

type allocationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAllocationRepository(db database.PgxIface, log *zap.Logger) AllocationRepository {
	return &allocationRepository{
		db:  db,
		log: log.With(zap.String("repository", "allocation")),
	}
}

const allocationColumns = `id, tenant_id, event_id, participant_ids, accommodation_type, vendor_accommodation_id,
	room_id, room_type, check_in_date, check_out_date, status, created_at, updated_at`

func (r *allocationRepository) CreateWithOccupancy(ctx context.Context, allocs []entity.Allocation, deltas []entity.OccupancyDelta) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, d := range deltas {
			if err := applyOccupancy(ctx, tx, allocsTenant(allocs), d); err != nil {
				return err
			}
		}

		for _, a := range allocs {
			query := `
				INSERT INTO allocations (` + allocationColumns + `)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			`
			_, err := tx.Exec(ctx, query,
				a.ID,
				a.TenantID,
				a.EventID,
				a.ParticipantIDs,
				a.AccommodationType,
				a.VendorAccommodationID,
				a.RoomID,
				a.RoomType,
				a.CheckInDate,
				a.CheckOutDate,
				a.Status,
				a.CreatedAt,
				a.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert allocation %s: %w", a.ID, err)
			}
		}
		return nil
	})

	if err != nil && !errors.Is(err, ErrCapacityExceeded) {
		r.log.Error("Failed to create allocations",
			zap.Error(err),
			zap.Int("allocations", len(allocs)),
		)
	}
	return err
}

// applyOccupancy adds d.Added occupants to a unit only if they still fit. A
// shared room additionally re-checks the gender rule against what is stored
// now: one known gender, the same as any current occupant, and "other" only
// alone.
func applyOccupancy(ctx context.Context, tx pgx.Tx, tenantID string, d entity.OccupancyDelta) error {
	var query string
	args := []any{d.UnitID, tenantID, d.Added}

	switch d.Type {
	case entity.AccommodationVendor:
		query = `
			UPDATE vendor_accommodations
			SET current_occupants = current_occupants + $3, updated_at = NOW()
			WHERE id = $1 AND tenant_id = $2 AND current_occupants + $3 <= capacity
		`
	case entity.AccommodationGuesthouse:
		query = `
			UPDATE rooms
			SET current_occupants = current_occupants + $3,
			    occupant_genders = CASE
			        WHEN current_occupants = 0 THEN $4::text[]
			        ELSE ARRAY(SELECT DISTINCT unnest(occupant_genders || $4::text[]) ORDER BY 1)
			    END,
			    updated_at = NOW()
			WHERE id = $1 AND tenant_id = $2 AND current_occupants + $3 <= capacity
			  AND (capacity <= 1 OR (
			      cardinality($4::text[]) <= 1
			      AND NOT ('unknown' = ANY($4::text[]))
			      AND (current_occupants = 0 OR occupant_genders <@ $4::text[])
			      AND NOT ('other' = ANY($4::text[]) AND current_occupants + $3 > 1)
			  ))
		`
		args = append(args, d.Genders.Strings())
	default:
		return fmt.Errorf("unknown accommodation type %q", d.Type)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update occupancy of %s: %w", d.UnitID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", ErrCapacityExceeded, d.Type, d.UnitID)
	}
	return nil
}

func allocsTenant(allocs []entity.Allocation) string {
	if len(allocs) == 0 {
		return ""
	}
	return allocs[0].TenantID
}

func (r *allocationRepository) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*entity.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE tenant_id = $1 AND id = $2`

	rows, err := r.db.Query(ctx, query, tenantID, id)
	if err != nil {
		r.log.Error("Failed to find allocation by ID", zap.Error(err), zap.String("allocation_id", id.String()))
		return nil, fmt.Errorf("find allocation %s: %w", id, err)
	}
	allocs, err := r.scan(rows)
	if err != nil {
		return nil, err
	}
	if len(allocs) == 0 {
		return nil, nil
	}
	return &allocs[0], nil
}

func (r *allocationRepository) ListByEvent(ctx context.Context, tenantID string, eventID uuid.UUID) ([]entity.Allocation, error) {
	query := `
		SELECT ` + allocationColumns + `
		FROM allocations
		WHERE tenant_id = $1 AND event_id = $2
		ORDER BY check_in_date ASC, created_at ASC
	`

	rows, err := r.db.Query(ctx, query, tenantID, eventID)
	if err != nil {
		r.log.Error("Failed to list allocations by event", zap.Error(err), zap.String("event_id", eventID.String()))
		return nil, fmt.Errorf("list allocations for event %s: %w", eventID, err)
	}
	return r.scan(rows)
}

func (r *allocationRepository) ListActiveByRoom(ctx context.Context, tenantID string, roomID uuid.UUID) ([]entity.Allocation, error) {
	query := `
		SELECT ` + allocationColumns + `
		FROM allocations
		WHERE tenant_id = $1 AND room_id = $2 AND status <> 'cancelled'
		ORDER BY check_in_date ASC
	`

	rows, err := r.db.Query(ctx, query, tenantID, roomID)
	if err != nil {
		r.log.Error("Failed to list allocations by room", zap.Error(err), zap.String("room_id", roomID.String()))
		return nil, fmt.Errorf("list allocations for room %s: %w", roomID, err)
	}
	return r.scan(rows)
}

func (r *allocationRepository) FindOverlapping(ctx context.Context, tenantID string, participantIDs []uuid.UUID, checkIn, checkOut time.Time) ([]entity.Allocation, error) {
	if len(participantIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + allocationColumns + `
		FROM allocations
		WHERE tenant_id = $1
		  AND participant_ids && $2::uuid[]
		  AND status <> 'cancelled'
		  AND check_in_date < $4
		  AND $3 < check_out_date
	`

	rows, err := r.db.Query(ctx, query, tenantID, participantIDs, checkIn, checkOut)
	if err != nil {
		r.log.Error("Failed to find overlapping allocations", zap.Error(err))
		return nil, fmt.Errorf("find overlapping allocations: %w", err)
	}
	return r.scan(rows)
}

func (r *allocationRepository) CheckIn(ctx context.Context, tenantID string, ids []uuid.UUID, at time.Time) (int64, error) {
	query := `
		UPDATE allocations
		SET status = 'checked_in', updated_at = $3
		WHERE tenant_id = $1 AND id = ANY($2) AND status = 'active'
	`

	tag, err := r.db.Exec(ctx, query, tenantID, ids, at)
	if err != nil {
		r.log.Error("Failed to check in allocations", zap.Error(err), zap.Int("count", len(ids)))
		return 0, fmt.Errorf("check in allocations: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *allocationRepository) Cancel(ctx context.Context, alloc entity.Allocation, release entity.OccupancyDelta) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE allocations
			SET status = 'cancelled', updated_at = $3
			WHERE tenant_id = $1 AND id = $2 AND status <> 'cancelled'
		`, alloc.TenantID, alloc.ID, alloc.UpdatedAt)
		if err != nil {
			return fmt.Errorf("cancel allocation %s: %w", alloc.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: allocation %s", ErrConcurrentUpdate, alloc.ID)
		}

		var query string
		switch release.Type {
		case entity.AccommodationVendor:
			query = `
				UPDATE vendor_accommodations
				SET current_occupants = GREATEST(current_occupants - $3, 0), updated_at = NOW()
				WHERE id = $1 AND tenant_id = $2
			`
		case entity.AccommodationGuesthouse:
			query = `
				UPDATE rooms
				SET current_occupants = GREATEST(current_occupants - $3, 0),
				    occupant_genders = CASE WHEN current_occupants - $3 <= 0 THEN '{}'::text[] ELSE occupant_genders END,
				    updated_at = NOW()
				WHERE id = $1 AND tenant_id = $2
			`
		default:
			return fmt.Errorf("unknown accommodation type %q", release.Type)
		}

		if _, err := tx.Exec(ctx, query, release.UnitID, alloc.TenantID, -release.Added); err != nil {
			return fmt.Errorf("release occupancy of %s: %w", release.UnitID, err)
		}
		return nil
	})

	if err != nil && !errors.Is(err, ErrConcurrentUpdate) {
		r.log.Error("Failed to cancel allocation",
			zap.Error(err),
			zap.String("allocation_id", alloc.ID.String()),
		)
	}
	return err
}

func (r *allocationRepository) scan(rows pgx.Rows) ([]entity.Allocation, error) {
	defer rows.Close()

	var allocs []entity.Allocation
	for rows.Next() {
		var a entity.Allocation
		err := rows.Scan(
			&a.ID,
			&a.TenantID,
			&a.EventID,
			&a.ParticipantIDs,
			&a.AccommodationType,
			&a.VendorAccommodationID,
			&a.RoomID,
			&a.RoomType,
			&a.CheckInDate,
			&a.CheckOutDate,
			&a.Status,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan allocation row", zap.Error(err))
			return nil, fmt.Errorf("scan allocation row: %w", err)
		}
		allocs = append(allocs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate allocation rows: %w", err)
	}
	return allocs, nil
}
