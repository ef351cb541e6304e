package services

import "errors"

// Sentinel errors shared by every service. Handlers translate them to HTTP
// statuses; service code wraps them with fmt.Errorf("%w: ...") when extra
// detail helps.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrBadRequest   = errors.New("bad request")
)
