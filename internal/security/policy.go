package security

import (
	"net/http"
	"strings"
)

// Decision is the outcome of evaluating the access policy for one request.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionDeny
	DecisionUnauthenticated
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionDeny:
		return "deny"
	case DecisionUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

type requirement int

const (
	requirePublic requirement = iota
	requireAuthority
)

// AccessRule maps one method and path prefix to its access requirement.
type AccessRule struct {
	method    string
	prefix    string
	kind      requirement
	authority string
}

// Public grants access without any credential.
func Public(method string, prefix string) AccessRule {
	return AccessRule{method: method, prefix: prefix, kind: requirePublic}
}

// RequireAuthority grants access only to principals holding the authority.
func RequireAuthority(method string, prefix string, authority string) AccessRule {
	return AccessRule{method: method, prefix: prefix, kind: requireAuthority, authority: authority}
}

// Policy is the ordered, process-wide rule set. It is immutable after
// construction and safe for unsynchronized concurrent reads.
type Policy struct {
	rules []AccessRule
}

func NewPolicy(rules ...AccessRule) *Policy {
	return &Policy{rules: rules}
}

// DefaultPolicy builds the rule set for the API: movie reads are public,
// movie writes need ROLE_user, user management needs ROLE_admin, and
// everything else needs some authenticated principal.
func DefaultPolicy(baseURL string) *Policy {
	movies := baseURL + "/movies"
	users := baseURL + "/users"
	return NewPolicy(
		Public(http.MethodGet, movies),
		RequireAuthority(http.MethodPost, movies, RolePrefix+"user"),
		RequireAuthority(http.MethodPatch, movies, RolePrefix+"user"),
		RequireAuthority(http.MethodDelete, movies, RolePrefix+"user"),
		RequireAuthority(http.MethodGet, users, RolePrefix+"admin"),
		RequireAuthority(http.MethodPost, users, RolePrefix+"admin"),
		RequireAuthority(http.MethodPut, users, RolePrefix+"admin"),
		RequireAuthority(http.MethodDelete, users, RolePrefix+"admin"),
	)
}

// Decide evaluates the rules in order; the first match wins. principal is nil
// when no credential could be established. Requests matching no rule fall
// through to requiring an authenticated principal, never to an implicit
// allow.
func (p *Policy) Decide(method string, path string, principal *Principal) Decision {
	for _, rule := range p.rules {
		if rule.method != method || !matchPrefix(path, rule.prefix) {
			continue
		}

		switch rule.kind {
		case requirePublic:
			return DecisionAllow
		case requireAuthority:
			if principal == nil {
				return DecisionUnauthenticated
			}
			if principal.Authorities().Has(rule.authority) {
				return DecisionAllow
			}
			return DecisionDeny
		}
	}

	if principal == nil {
		return DecisionUnauthenticated
	}
	return DecisionAllow
}

// matchPrefix matches /base/movies against /base/movies and /base/movies/…,
// but not /base/moviesearch.
func matchPrefix(path string, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || strings.HasPrefix(rest, "/")
}
