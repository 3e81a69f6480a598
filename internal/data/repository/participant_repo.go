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

// ParticipantRepository reads participants owned by the registration module.
type ParticipantRepository interface {
	FindByEvent(ctx context.Context, tenantID string, eventID uuid.UUID) ([]entity.Participant, error)
	FindByIDs(ctx context.Context, tenantID string, ids []uuid.UUID) ([]entity.Participant, error)
}

type participantRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewParticipantRepository(db database.PgxIface, log *zap.Logger) ParticipantRepository {
	return &participantRepository{
		db:  db,
		log: log.With(zap.String("repository", "participant")),
	}
}

func (r *participantRepository) FindByEvent(ctx context.Context, tenantID string, eventID uuid.UUID) ([]entity.Participant, error) {
	query := `
		SELECT id, event_id, name, email, gender
		FROM participants
		WHERE tenant_id = $1 AND event_id = $2
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query, tenantID, eventID)
	if err != nil {
		r.log.Error("Failed to list participants by event",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("find participants for event %s: %w", eventID, err)
	}
	return r.scan(rows)
}

func (r *participantRepository) FindByIDs(ctx context.Context, tenantID string, ids []uuid.UUID) ([]entity.Participant, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, event_id, name, email, gender
		FROM participants
		WHERE tenant_id = $1 AND id = ANY($2)
	`

	rows, err := r.db.Query(ctx, query, tenantID, ids)
	if err != nil {
		r.log.Error("Failed to find participants by IDs",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
			zap.Int("count", len(ids)),
		)
		return nil, fmt.Errorf("find participants by IDs: %w", err)
	}
	return r.scan(rows)
}

func (r *participantRepository) scan(rows pgx.Rows) ([]entity.Participant, error) {
	defer rows.Close()

	var participants []entity.Participant
	for rows.Next() {
		var (
			p      entity.Participant
			gender string
		)
		if err := rows.Scan(&p.ID, &p.EventID, &p.Name, &p.Email, &gender); err != nil {
			r.log.Error("Failed to scan participant row", zap.Error(err))
			return nil, fmt.Errorf("scan participant row: %w", err)
		}
		p.Gender = entity.ParseGender(gender)
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participant rows: %w", err)
	}
	return participants, nil
}
