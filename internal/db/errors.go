package db

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors for engine operations.
var (
	ErrIndexNotFound    = errors.New("db: index not found")
	ErrIndexExists      = errors.New("db: index already exists")
	ErrDocumentNotFound = errors.New("db: document not found")
	// ErrUnavailable covers transport failures, timeouts and overload responses.
	ErrUnavailable = errors.New("db: engine unavailable")
	// ErrRejected covers structured errors returned by the engine.
	ErrRejected = errors.New("db: engine rejected request")
)

// Op constants name engine API calls for error context.
const (
	OpCreateIndex = "indices.create"
	OpDeleteIndex = "indices.delete"
	OpIndexExists = "indices.exists"
	OpIndex       = "index"
	OpGet         = "get"
	OpUpdate      = "update"
	OpDelete      = "delete"
	OpSearch      = "search"
	OpHealth      = "cluster.health"
)

// Error wraps an underlying error with the operation name and the engine's error details.
type Error struct {
	Op     string
	Status int
	Type   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Err.Error()
	if e.Status != 0 {
		msg += " (status " + strconv.Itoa(e.Status) + ")"
	}
	if e.Type != "" {
		msg += " [" + e.Type + "]"
	}
	if e.Reason != "" {
		msg += " " + e.Reason
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Unavailable wraps a transport-level failure.
func Unavailable(op string, err error) error {
	return &Error{Op: op, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
}

// IsNotFound reports whether err is a missing-document or missing-index error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDocumentNotFound) || errors.Is(err, ErrIndexNotFound)
}

// Status returns a low-cardinality label for an operation outcome.
func Status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrDocumentNotFound), errors.Is(err, ErrIndexNotFound):
		return "not_found"
	case errors.Is(err, ErrIndexExists):
		return "exists"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrRejected):
		return "rejected"
	default:
		return "error"
	}
}
