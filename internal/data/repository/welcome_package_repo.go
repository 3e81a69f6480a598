package repository

import (
	"context"
	"fmt"

	"event-logistics/internal/data/entity"
	"event-logistics/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WelcomePackageRepository interface {
	// FindUncollected returns the packages still waiting for any of the
	// given participants.
	FindUncollected(ctx context.Context, tenantID string, participantIDs []uuid.UUID) ([]entity.WelcomePackage, error)
}

type welcomePackageRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWelcomePackageRepository(db database.PgxIface, log *zap.Logger) WelcomePackageRepository {
	return &welcomePackageRepository{
		db:  db,
		log: log.With(zap.String("repository", "welcome_package")),
	}
}

func (r *welcomePackageRepository) FindUncollected(ctx context.Context, tenantID string, participantIDs []uuid.UUID) ([]entity.WelcomePackage, error) {
	if len(participantIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT participant_id, collected
		FROM welcome_packages
		WHERE tenant_id = $1 AND participant_id = ANY($2) AND collected = FALSE
	`

	rows, err := r.db.Query(ctx, query, tenantID, participantIDs)
	if err != nil {
		r.log.Error("Failed to find uncollected welcome packages", zap.Error(err), zap.Int("participants", len(participantIDs)))
		return nil, fmt.Errorf("find uncollected welcome packages: %w", err)
	}
	defer rows.Close()

	var packages []entity.WelcomePackage
	for rows.Next() {
		var p entity.WelcomePackage
		if err := rows.Scan(&p.ParticipantID, &p.Collected); err != nil {
			r.log.Error("Failed to scan welcome package row", zap.Error(err))
			return nil, fmt.Errorf("scan welcome package row: %w", err)
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}
