package utils

import (
	"context"
	"slices"
	"strings"
)

type contextKey string

const principalKey contextKey = "principal"

// RolePrefix is stripped from role names before they are compared or forwarded
const RolePrefix = "ROLE_"

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID   string
	Username string
	Roles    []string
}

// HasRole reports whether the principal holds role, ignoring the ROLE_ prefix and case.
func (p *Principal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	want := NormalizeRole(role)
	return slices.ContainsFunc(p.Roles, func(r string) bool {
		return strings.EqualFold(NormalizeRole(r), want)
	})
}

func NormalizeRole(role string) string {
	return strings.TrimPrefix(strings.TrimSpace(role), RolePrefix)
}

// NormalizeRoles trims, strips the ROLE_ prefix and drops empty entries.
func NormalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		if role = NormalizeRole(role); role != "" {
			out = append(out, role)
		}
	}
	return out
}

// SplitRoles parses a comma separated role header.
func SplitRoles(header string) []string {
	if strings.TrimSpace(header) == "" {
		return []string{}
	}
	return NormalizeRoles(strings.Split(header, ","))
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok && p != nil
}
