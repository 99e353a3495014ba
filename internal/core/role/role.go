// Package role defines the closed set of identity roles.
// Role strings are parsed once at the boundary (token claims, request DTOs,
// database rows); everything past that point works with Role values only.
package role

import (
	"fmt"
	"strings"
)

// Role is an authorization level of an identity.
type Role string

const (
	// SuperAdmin acts across all tenants and bypasses tenant scope checks.
	SuperAdmin Role = "SUPER_ADMIN"
	Admin      Role = "ADMIN"
	Manager    Role = "MANAGER"
	Staff      Role = "STAFF"
	Guest      Role = "GUEST"
)

// All lists every valid role in descending privilege order.
var All = []Role{SuperAdmin, Admin, Manager, Staff, Guest}

var valid = map[Role]struct{}{
	SuperAdmin: {},
	Admin:      {},
	Manager:    {},
	Staff:      {},
	Guest:      {},
}

// Parse converts a raw string into a Role.
// Matching is case-insensitive; surrounding whitespace is ignored.
func Parse(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := valid[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// MustParse is Parse that panics on error. Use only for constants and tests.
func MustParse(s string) Role {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// IsValid reports whether r is one of the declared roles.
func (r Role) IsValid() bool {
	_, ok := valid[r]
	return ok
}

// IsSuperuser reports whether r is exempt from tenant scoping.
func (r Role) IsSuperuser() bool {
	return r == SuperAdmin
}

func (r Role) String() string {
	return string(r)
}

// UnmarshalText validates the role when decoding JSON/YAML/query values.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r), nil
}

// Set is an immutable set of roles.
// The zero value is an empty set, which routes treat as "any authenticated role".
type Set struct {
	m map[Role]struct{}
}

// NewSet builds a Set from the given roles.
func NewSet(roles ...Role) Set {
	m := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		m[r] = struct{}{}
	}
	return Set{m: m}
}

// Contains reports whether r is a member of the set.
func (s Set) Contains(r Role) bool {
	_, ok := s.m[r]
	return ok
}

// IsEmpty reports whether no role was declared.
func (s Set) IsEmpty() bool {
	return len(s.m) == 0
}

// Roles returns the members in privilege order.
func (s Set) Roles() []Role {
	out := make([]Role, 0, len(s.m))
	for _, r := range All {
		if s.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}
