package auth

import (
	"net/http"
	"slices"
	"strings"

	"github.com/ignite/customer-onboarding/internal/pkg/httputil"
	"github.com/ignite/customer-onboarding/internal/pkg/logger"
)

type requirementKind int

const (
	permitAll requirementKind = iota
	authenticated
	anyRole
)

// Requirement is what a rule demands of a request's grant.
type Requirement struct {
	kind  requirementKind
	roles []Role
}

// PermitAll admits every request, with or without a grant.
func PermitAll() Requirement { return Requirement{kind: permitAll} }

// Authenticated admits any request that carries a grant.
func Authenticated() Requirement { return Requirement{kind: authenticated} }

// AnyRole admits requests whose grant is one of roles.
func AnyRole(roles ...Role) Requirement {
	return Requirement{kind: anyRole, roles: append([]Role(nil), roles...)}
}

func (q Requirement) String() string {
	switch q.kind {
	case permitAll:
		return "permitAll"
	case authenticated:
		return "authenticated"
	default:
		names := make([]string, len(q.roles))
		for i, r := range q.roles {
			names[i] = string(r)
		}
		return "anyRole(" + strings.Join(names, ",") + ")"
	}
}

// Rule binds a method and path pattern to a requirement. An empty Method
// matches every method. Pattern is either an exact path or a prefix ending in
// "/**", which matches the prefix itself and everything beneath it.
type Rule struct {
	Method   string
	Pattern  string
	Requires Requirement
}

func (r Rule) matches(method, path string) bool {
	if r.Method != "" && r.Method != method {
		return false
	}
	if prefix, ok := strings.CutSuffix(r.Pattern, "/**"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == r.Pattern
}

// Decision is the outcome of evaluating a request against the policy.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "unauthenticated"
	default:
		return "forbidden"
	}
}

// Policy is an ordered rule table. The first matching rule decides; a request
// that matches no rule must be authenticated.
type Policy struct {
	rules []Rule
}

// NewPolicy creates a policy evaluating rules top to bottom.
func NewPolicy(rules []Rule) *Policy {
	return &Policy{rules: append([]Rule(nil), rules...)}
}

// DefaultRules is the onboarding API's access table.
func DefaultRules() []Rule {
	return []Rule{
		{Method: http.MethodGet, Pattern: "/health", Requires: PermitAll()},
		{Method: http.MethodPost, Pattern: "/customers", Requires: AnyRole(RoleAdmin)},
		{Method: http.MethodGet, Pattern: "/customers/**", Requires: AnyRole(RoleAdmin, RoleUser)},
		{Method: http.MethodPost, Pattern: "/appointments", Requires: AnyRole(RoleAdmin, RoleUser)},
		{Pattern: "/**", Requires: Authenticated()},
	}
}

// Requirement returns the requirement of the first rule matching the request.
func (p *Policy) Requirement(method, path string) Requirement {
	for _, rule := range p.rules {
		if rule.matches(method, path) {
			return rule.Requires
		}
	}
	return Authenticated()
}

// Decide evaluates a request. granted is false when the request carries no
// grant.
func (p *Policy) Decide(method, path string, role Role, granted bool) Decision {
	req := p.Requirement(method, path)
	switch req.kind {
	case permitAll:
		return Allow
	case authenticated:
		if !granted {
			return DenyUnauthenticated
		}
		return Allow
	default:
		if !granted {
			return DenyUnauthenticated
		}
		if slices.Contains(req.roles, role) {
			return Allow
		}
		return DenyForbidden
	}
}

// Middleware rejects requests the policy denies: 401 without a grant, 403
// with an insufficient one. It must run after Authenticate.
func (p *Policy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, granted := GrantFromContext(r.Context())

		switch d := p.Decide(r.Method, r.URL.Path, role, granted); d {
		case Allow:
			next.ServeHTTP(w, r)
		case DenyUnauthenticated:
			logger.Info("request denied", "method", r.Method, "path", r.URL.Path, "decision", d)
			httputil.Unauthorized(w)
		default:
			logger.Info("request denied", "method", r.Method, "path", r.URL.Path, "decision", d, "role", role)
			httputil.Forbidden(w)
		}
	})
}
