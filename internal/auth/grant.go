// Package auth resolves a role grant from a request's bearer token and
// enforces the route authorization table against it.
//
// Authenticate runs first and only ever adds information to the request
// context. Policy.Middleware runs second and is the only place a request is
// rejected.
package auth

import "context"

// Role is a label granted to a request by its bearer token.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

type grantContextKey struct{}

// WithGrant stores the resolved role on the context.
func WithGrant(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, grantContextKey{}, role)
}

// GrantFromContext returns the role granted to the request, if any.
func GrantFromContext(ctx context.Context) (Role, bool) {
	role, ok := ctx.Value(grantContextKey{}).(Role)
	return role, ok
}
