package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrQueryRequired indicates a search was attempted with an empty query.
	ErrQueryRequired = errors.New("search query is required")
)

// ErrorKind classifies upstream failures into the categories the user
// interface distinguishes. Auth and rate-limit failures get their own
// actionable messages; everything else degrades to mock data or an
// empty-result state.
type ErrorKind int

const (
	// KindUnknown is an unclassified failure.
	KindUnknown ErrorKind = iota

	// KindAuth is an authentication failure (HTTP 401). Fatal for the
	// request, never retried, never masked by the mock fallback.
	KindAuth

	// KindRateLimited is an HTTP 429, retried with backoff then surfaced.
	KindRateLimited

	// KindTransient is a 5xx server failure, retried then eligible for
	// the mock fallback.
	KindTransient

	// KindMalformed is a non-JSON or unexpected-shape response, treated
	// as an empty result set.
	KindMalformed

	// KindNetwork is a connection or timeout failure, retried then
	// surfaced as recoverable.
	KindNetwork
)

// String returns the kind's name for logging.
func (k ErrorKind) String() string {
	switch k {
	case KindAuth:
		return "authentication"
	case KindRateLimited:
		return "rate_limited"
	case KindTransient:
		return "transient"
	case KindMalformed:
		return "malformed"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// SourceError is a classified failure from a filing data source.
type SourceError struct {
	Kind   ErrorKind
	Status int
	Detail string
}

func (e *SourceError) Error() string {
	switch e.Kind {
	case KindAuth:
		return fmt.Sprintf("authentication failed (status %d): %s", e.Status, e.Detail)
	case KindRateLimited:
		return fmt.Sprintf("rate limit exceeded (status %d): %s", e.Status, e.Detail)
	default:
		if e.Status != 0 {
			return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.Status, e.Detail)
		}
		return fmt.Sprintf("%s error: %s", e.Kind, e.Detail)
	}
}

// NewSourceError builds a SourceError for the given kind.
func NewSourceError(kind ErrorKind, status int, detail string) *SourceError {
	return &SourceError{Kind: kind, Status: status, Detail: detail}
}

// IsAuthFailure checks if the error indicates an authentication failure.
func IsAuthFailure(err error) bool {
	var srcErr *SourceError
	return errors.As(err, &srcErr) && srcErr.Kind == KindAuth
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var srcErr *SourceError
	return errors.As(err, &srcErr) && srcErr.Kind == KindRateLimited
}

// IsTransient checks if the error indicates a retriable server failure.
func IsTransient(err error) bool {
	var srcErr *SourceError
	return errors.As(err, &srcErr) && (srcErr.Kind == KindTransient || srcErr.Kind == KindNetwork)
}

// IsMalformed checks if the error indicates an unparseable response body.
func IsMalformed(err error) bool {
	var srcErr *SourceError
	return errors.As(err, &srcErr) && srcErr.Kind == KindMalformed
}
