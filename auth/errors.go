package auth

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrTokenMalformed is returned when a token cannot be parsed into the
// expected structure: empty strings, truncated tokens, random bytes.
var ErrTokenMalformed = goerrors.New("authentication token is malformed", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("TOKEN_MALFORMED")

// ErrTokenSignature is returned when the token signature does not verify
// against the configured signing key, or when the token was signed with an
// unexpected algorithm.
var ErrTokenSignature = goerrors.New("authentication token signature is invalid", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("TOKEN_SIGNATURE_INVALID")

// ErrTokenExpired is returned when the token expiry is at or before now.
var ErrTokenExpired = goerrors.New("authentication token has expired", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("TOKEN_EXPIRED")

// ErrMismatchedHashAndPassword is the uniform failure for bad credentials.
// Unknown email and wrong password are indistinguishable on purpose.
var ErrMismatchedHashAndPassword = goerrors.New("invalid credentials", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("INVALID_CREDENTIALS")

// ErrNotResourceOwner is the guard denial: the bound principal neither owns
// the resource nor carries the admin flag.
var ErrNotResourceOwner = goerrors.New("principal does not own this resource", goerrors.CategoryAuthz).
	WithCode(goerrors.CodeForbidden).
	WithTextCode("NOT_RESOURCE_OWNER")

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound).
	WithTextCode("IDENTITY_NOT_FOUND")

// ErrNoEmptyString rejects empty secrets before they reach bcrypt.
var ErrNoEmptyString = goerrors.New("value must not be empty", goerrors.CategoryBadInput).
	WithCode(goerrors.CodeBadRequest).
	WithTextCode("EMPTY_VALUE")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.TextCode == ErrTokenExpired.TextCode {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.TextCode == ErrTokenMalformed.TextCode {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
