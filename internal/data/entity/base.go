package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is embedded by every tenant-scoped record.
type Base struct {
	ID        uuid.UUID `db:"id"`
	TenantID  string    `db:"tenant_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
