package repository

import (
	"context"
	"errors"
	"fmt"

	"event-logistics/internal/data/entity"
	"event-logistics/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VendorRepository interface {
	List(ctx context.Context, tenantID string) ([]entity.VendorAccommodation, error)
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*entity.VendorAccommodation, error)
}

type vendorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVendorRepository(db database.PgxIface, log *zap.Logger) VendorRepository {
	return &vendorRepository{
		db:  db,
		log: log.With(zap.String("repository", "vendor_accommodation")),
	}
}

func (r *vendorRepository) List(ctx context.Context, tenantID string) ([]entity.VendorAccommodation, error) {
	query := `
		SELECT id, tenant_id, vendor_name, location, capacity, current_occupants, created_at, updated_at
		FROM vendor_accommodations
		WHERE tenant_id = $1
		ORDER BY vendor_name ASC
	`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		r.log.Error("Failed to list vendor accommodations", zap.Error(err), zap.String("tenant_id", tenantID))
		return nil, fmt.Errorf("list vendor accommodations: %w", err)
	}
	defer rows.Close()

	var vendors []entity.VendorAccommodation
	for rows.Next() {
		var v entity.VendorAccommodation
		if err := rows.Scan(&v.ID, &v.TenantID, &v.VendorName, &v.Location, &v.Capacity, &v.CurrentOccupants, &v.CreatedAt, &v.UpdatedAt); err != nil {
			r.log.Error("Failed to scan vendor accommodation row", zap.Error(err))
			return nil, fmt.Errorf("scan vendor accommodation row: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func (r *vendorRepository) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*entity.VendorAccommodation, error) {
	query := `
		SELECT id, tenant_id, vendor_name, location, capacity, current_occupants, created_at, updated_at
		FROM vendor_accommodations
		WHERE tenant_id = $1 AND id = $2
	`

	var v entity.VendorAccommodation
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&v.ID, &v.TenantID, &v.VendorName, &v.Location, &v.Capacity, &v.CurrentOccupants, &v.CreatedAt, &v.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vendor accommodation by ID",
			zap.Error(err),
			zap.String("vendor_id", id.String()),
		)
		return nil, fmt.Errorf("find vendor accommodation %s: %w", id, err)
	}
	return &v, nil
}
