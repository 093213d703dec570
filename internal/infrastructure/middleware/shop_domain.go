package middleware

import (
	"net/http"
	"strings"

	"quotiza-connect/internal/domain"

	"github.com/rs/zerolog"
)

// ShopDomainMiddleware extracts the tenant shop from the X-Shop-Domain
// header and stores it in the request context. The embedded admin UI sends
// the header on every API call; requests without it are rejected.
func ShopDomainMiddleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			shop := strings.TrimSpace(r.Header.Get("X-Shop-Domain"))
			if shop == "" {
				logger.Warn().Str("path", r.URL.Path).Msg("Request without X-Shop-Domain header")
				http.Error(w, "X-Shop-Domain header is required", http.StatusBadRequest)
				return
			}

			ctx := domain.WithShopDomain(r.Context(), shop)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
