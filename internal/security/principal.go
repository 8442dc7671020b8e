package security

import (
	"sort"
	"strings"

	"stream-api/internal/model"
)

// RolePrefix turns a stored role name into a granted authority, e.g. role
// "admin" grants authority "ROLE_admin". The access policy matches on the
// prefixed form.
const RolePrefix = "ROLE_"

// Authorities is a set of granted authority names.
type Authorities map[string]struct{}

func NewAuthorities(names ...string) Authorities {
	set := make(Authorities, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// ParseAuthorities splits a whitespace-separated claim value into a set. The
// names are taken verbatim; the issuer already applied the role prefix.
func ParseAuthorities(claim string) Authorities {
	return NewAuthorities(strings.Fields(claim)...)
}

func (a Authorities) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Join renders the set as a space-separated string, sorted so the output is
// deterministic.
func (a Authorities) Join() string {
	return strings.Join(a.List(), " ")
}

func (a Authorities) List() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a Authorities) Equal(other Authorities) bool {
	if len(a) != len(other) {
		return false
	}
	for name := range a {
		if !other.Has(name) {
			return false
		}
	}
	return true
}

// Principal is the authenticated, request-scoped projection of a user record.
// It is constructed fresh per authentication attempt, never persisted and
// never shared across requests.
type Principal struct {
	username    string
	enabled     bool
	authorities Authorities
}

// ResolvePrincipal derives a Principal from a stored user record. The role
// string is split on whitespace and each role is prefixed into an authority.
// Disabled records still resolve; the caller decides whether disabled blocks
// authentication.
func ResolvePrincipal(u model.User) Principal {
	roles := strings.Fields(u.Roles)
	authorities := make(Authorities, len(roles))
	for _, role := range roles {
		authorities[RolePrefix+role] = struct{}{}
	}
	return Principal{
		username:    u.Email,
		enabled:     u.Enabled,
		authorities: authorities,
	}
}

// TokenPrincipal rebuilds a principal-equivalent from a verified token's
// authorities claim.
func TokenPrincipal(authoritiesClaim string) Principal {
	return Principal{
		enabled:     true,
		authorities: ParseAuthorities(authoritiesClaim),
	}
}

func (p Principal) Username() string {
	return p.username
}

func (p Principal) Enabled() bool {
	return p.enabled
}

func (p Principal) Authorities() Authorities {
	return p.authorities
}
