package repository

import (
	"context"
	"fmt"

	"event-logistics/internal/data/entity"
	"event-logistics/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoomRepository interface {
	ListByGuesthouse(ctx context.Context, tenantID string, guesthouseID *uuid.UUID) ([]entity.Room, error)
	// FindByIDs returns rooms in the order the ids were given. Unknown ids
	// are skipped.
	FindByIDs(ctx context.Context, tenantID string, ids []uuid.UUID) ([]entity.Room, error)
}

type roomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomRepository(db database.PgxIface, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

const roomColumns = `id, tenant_id, guesthouse_id, room_number, capacity, current_occupants, occupant_genders, created_at, updated_at`

func (r *roomRepository) ListByGuesthouse(ctx context.Context, tenantID string, guesthouseID *uuid.UUID) ([]entity.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE tenant_id = $1 AND ($2::uuid IS NULL OR guesthouse_id = $2)
		ORDER BY guesthouse_id, room_number ASC
	`

	rows, err := r.db.Query(ctx, query, tenantID, guesthouseID)
	if err != nil {
		r.log.Error("Failed to list rooms", zap.Error(err), zap.String("tenant_id", tenantID))
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return r.scan(rows)
}

func (r *roomRepository) FindByIDs(ctx context.Context, tenantID string, ids []uuid.UUID) ([]entity.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE tenant_id = $1 AND id = ANY($2)
	`

	rows, err := r.db.Query(ctx, query, tenantID, ids)
	if err != nil {
		r.log.Error("Failed to find rooms by IDs", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find rooms by IDs: %w", err)
	}
	found, err := r.scan(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]entity.Room, len(found))
	for _, room := range found {
		byID[room.ID] = room
	}
	ordered := make([]entity.Room, 0, len(found))
	for _, id := range ids {
		if room, ok := byID[id]; ok {
			ordered = append(ordered, room)
			delete(byID, id)
		}
	}
	return ordered, nil
}

func (r *roomRepository) scan(rows pgx.Rows) ([]entity.Room, error) {
	defer rows.Close()

	var rooms []entity.Room
	for rows.Next() {
		var (
			room    entity.Room
			genders []string
		)
		err := rows.Scan(
			&room.ID,
			&room.TenantID,
			&room.GuesthouseID,
			&room.RoomNumber,
			&room.Capacity,
			&room.CurrentOccupants,
			&genders,
			&room.CreatedAt,
			&room.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan room row", zap.Error(err))
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		room.OccupantGenders = entity.GenderSetFromStrings(genders)
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room rows: %w", err)
	}
	return rooms, nil
}
