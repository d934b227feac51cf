package auth

import "context"

// Authorize compares the bound principal against the owner of the resource
// being mutated. Access is granted when the principal is present and either
// owns the resource or carries the administrative flag. The check has no
// side effects; a denial is always ErrNotResourceOwner.
func Authorize(p *Principal, resourceOwnerID string) error {
	if p == nil {
		return ErrNotResourceOwner
	}
	if p.Admin {
		return nil
	}
	if p.UserID != "" && p.UserID == resourceOwnerID {
		return nil
	}
	return ErrNotResourceOwner
}

// AuthorizeContext pulls the principal out of the request context before
// running the ownership check.
func AuthorizeContext(ctx context.Context, resourceOwnerID string) error {
	p, _ := FromContext(ctx)
	return Authorize(p, resourceOwnerID)
}
