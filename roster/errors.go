package roster

import (
	goerrors "github.com/goliatone/go-errors"
)

// ErrAlreadyParticipating is returned when the user is already on the
// session roster.
var ErrAlreadyParticipating = goerrors.New("user already participates in this session", goerrors.CategoryConflict).
	WithCode(goerrors.CodeConflict).
	WithTextCode("ALREADY_PARTICIPATING")

// ErrNotParticipating is returned when the user is not on the roster.
var ErrNotParticipating = goerrors.New("user does not participate in this session", goerrors.CategoryConflict).
	WithCode(goerrors.CodeConflict).
	WithTextCode("NOT_PARTICIPATING")
