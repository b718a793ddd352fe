// Package auth issues and verifies bearer tokens and carries the authenticated principal.
package auth

import "context"

// Principal is the authenticated identity attached to a request after token validation.
type Principal struct {
	UserID uint
	Email  string
	Role   string
}

// HasAnyRole reports whether the principal's role is one of roles.
func (p *Principal) HasAnyRole(roles ...string) bool {
	if p == nil || p.Role == "" {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom extracts the principal stored by WithPrincipal.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
