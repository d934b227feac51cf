package auth

import (
	"context"
)

// Principal is the resolved identity of the authenticated caller for the
// current request. It is created by the identity filter, lives only in the
// request context, and is never persisted.
type Principal struct {
	UserID    string `json:"id"`
	EmailAddr string `json:"email"`
	GivenName string `json:"first_name"`
	Surname   string `json:"last_name"`
	Admin     bool   `json:"admin"`
}

var _ Identity = (*Principal)(nil)

func (p *Principal) ID() string { return p.UserID }

func (p *Principal) Email() string { return p.EmailAddr }

func (p *Principal) FirstName() string { return p.GivenName }

func (p *Principal) LastName() string { return p.Surname }

func (p *Principal) IsAdmin() bool { return p.Admin }

// PrincipalFromIdentity copies an identity into a request bound Principal.
func PrincipalFromIdentity(identity Identity) *Principal {
	if identity == nil {
		return nil
	}
	return &Principal{
		UserID:    identity.ID(),
		EmailAddr: identity.Email(),
		GivenName: identity.FirstName(),
		Surname:   identity.LastName(),
		Admin:     identity.IsAdmin(),
	}
}

var principalCtxKey = &contextKey{"principal"}
var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithContext sets the Principal in the given context
func WithContext(r context.Context, p *Principal) context.Context {
	return context.WithValue(r, principalCtxKey, p)
}

// FromContext finds the principal from the context.
func FromContext(ctx context.Context) (*Principal, bool) {
	raw, ok := ctx.Value(principalCtxKey).(*Principal)
	if !ok || raw == nil {
		return nil, false
	}
	return raw, true
}

// WithClaimsContext sets the AuthClaims in the given context
func WithClaimsContext(r context.Context, claims AuthClaims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// GetClaims extracts the AuthClaims from the standard context
func GetClaims(ctx context.Context) (AuthClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(AuthClaims)
	return raw, ok
}
