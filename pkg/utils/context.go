package utils

import (
	"context"
)

type contextKey string

const (
	TenantIDKey contextKey = "tenant_id"
	ActorKey    contextKey = "actor"
)

// SetTenantContext stores the tenant and the acting user for this request.
func SetTenantContext(ctx context.Context, tenantID, actor string) context.Context {
	ctx = context.WithValue(ctx, TenantIDKey, tenantID)
	ctx = context.WithValue(ctx, ActorKey, actor)
	return ctx
}

func GetTenantFromContext(ctx context.Context) (string, bool) {
	tenantVal := ctx.Value(TenantIDKey)
	if tenantVal == nil {
		return "", false
	}

	tenantID, ok := tenantVal.(string)
	return tenantID, ok && tenantID != ""
}

// GetActorFromContext returns the acting user, empty when anonymous
func GetActorFromContext(ctx context.Context) string {
	actor, _ := ctx.Value(ActorKey).(string)
	return actor
}
