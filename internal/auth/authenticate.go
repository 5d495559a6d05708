package auth

import (
	"net/http"
	"strings"

	"github.com/ignite/customer-onboarding/internal/pkg/logger"
)

const bearerPrefix = "Bearer "

// TokenTable maps a bearer token to the role it grants.
type TokenTable map[string]Role

// DefaultTokens returns the fixed token table the API ships with.
func DefaultTokens() TokenTable {
	return TokenTable{
		"ADMIN123": RoleAdmin,
		"USER123":  RoleUser,
	}
}

// Resolve maps an Authorization header value to a role. Absent, malformed
// and unknown credentials all resolve to no grant.
func (t TokenTable) Resolve(header string) (Role, bool) {
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return "", false
	}
	role, ok := t[token]
	return role, ok
}

// Authenticate returns middleware that installs the grant resolved from the
// Authorization header into the request context. It never rejects a request.
// The table is copied, so later changes to tokens have no effect.
func Authenticate(tokens TokenTable) func(http.Handler) http.Handler {
	table := make(TokenTable, len(tokens))
	for k, v := range tokens {
		table[k] = v
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := table.Resolve(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			logger.Debug("request authenticated", "method", r.Method, "path", r.URL.Path, "role", role)
			next.ServeHTTP(w, r.WithContext(WithGrant(r.Context(), role)))
		})
	}
}
