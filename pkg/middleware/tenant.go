package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"event-logistics/pkg/utils"

	"go.uber.org/zap"
)

const (
	TenantHeader = "X-Tenant-ID"
	ActorHeader  = "X-User-Email"
)

var tenantPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,63}$`)

// Tenant requires an X-Tenant-ID header and stores it, with the optional
// acting user, in the request context. Authentication happens upstream.
func Tenant(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID := strings.TrimSpace(r.Header.Get(TenantHeader))
			if tenantID == "" {
				utils.ResponseBadRequest(w, "Missing "+TenantHeader+" header", nil)
				return
			}
			if !tenantPattern.MatchString(tenantID) {
				logger.Warn("Rejected malformed tenant id", zap.String("tenant_id", tenantID))
				utils.ResponseBadRequest(w, "Invalid "+TenantHeader+" header", nil)
				return
			}

			actor := strings.TrimSpace(r.Header.Get(ActorHeader))
			ctx := utils.SetTenantContext(r.Context(), tenantID, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
