package middleware

import (
	"crypto/subtle"
	"net/http"

	"rental-booking/pkg/apperror"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

const AdminKeyHeader = "X-Admin-Key"

// AdminGate guards admin routes with the shared ADMIN_API_KEY.
type AdminGate struct {
	digest     *[blake2b.Size256]byte
	production bool
	log        *zap.Logger
}

// NewAdminGate keeps only a digest of key; requests are compared digest to
// digest in constant time. An empty key disables the gate outside production
// and closes it in production.
func NewAdminGate(key string, production bool, log *zap.Logger) (*AdminGate, error) {
	gate := &AdminGate{
		production: production,
		log:        log.With(zap.String("middleware", "admin")),
	}

	if key == "" {
		if production {
			gate.log.Warn("ADMIN_API_KEY not set, admin routes are closed")
		} else {
			gate.log.Warn("ADMIN_API_KEY not set, admin routes are open")
		}
		return gate, nil
	}

	digest := blake2b.Sum256([]byte(key))
	gate.digest = &digest
	return gate, nil
}

func (g *AdminGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := g.check(r); err != nil {
			if err.Kind == apperror.KindForbidden && g.digest != nil {
				g.log.Warn("Admin check: invalid key",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr))
			}
			utils.ResponseJSON(w, err.HTTPStatus(), err.Message, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g *AdminGate) check(r *http.Request) *apperror.Error {
	if g.digest == nil {
		if g.production {
			return apperror.Forbidden("Admin access is not configured")
		}
		return nil
	}

	provided := r.Header.Get(AdminKeyHeader)
	if provided == "" {
		return apperror.Unauthorized("Admin key required")
	}

	got := blake2b.Sum256([]byte(provided))
	if subtle.ConstantTimeCompare(got[:], g.digest[:]) != 1 {
		return apperror.Forbidden("Invalid admin key")
	}
	return nil
}
