package core

import "errors"

// Domain errors surfaced to callers. Handlers translate these into HTTP
// statuses; everything else is treated as an internal failure.
var (
	ErrDuplicateUsername   = errors.New("username already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrNotFound            = errors.New("not found")
	ErrAnalysisUnavailable = errors.New("analysis unavailable")
	ErrStorageUnavailable  = errors.New("storage unavailable")
)
