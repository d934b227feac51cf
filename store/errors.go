package store

import (
	goerrors "github.com/goliatone/go-errors"
)

// ErrSessionNotFound is returned when a session id does not resolve.
var ErrSessionNotFound = goerrors.New("session not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound).
	WithTextCode("SESSION_NOT_FOUND")

// ErrUserNotFound is returned when a user id or email does not resolve.
var ErrUserNotFound = goerrors.New("user not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound).
	WithTextCode("USER_NOT_FOUND")

// ErrTeacherNotFound is returned when a teacher id does not resolve.
var ErrTeacherNotFound = goerrors.New("teacher not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound).
	WithTextCode("TEACHER_NOT_FOUND")

// ErrEmailTaken is returned on registration with an email already in use.
var ErrEmailTaken = goerrors.New("email is already registered", goerrors.CategoryConflict).
	WithCode(goerrors.CodeConflict).
	WithTextCode("EMAIL_TAKEN")
