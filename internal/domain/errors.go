package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("invalid input")

	ErrInvalidJobState  = errors.New("invalid job state")
	ErrChunksIncomplete = errors.New("not all chunks completed")
	ErrDurationUnknown  = errors.New("video duration missing")

	ErrNoHighlights        = errors.New("no highlights found for video")
	ErrNoCandidates        = errors.New("no highlight candidates found")
	ErrHighlightTooShort   = errors.New("final highlight shorter than minimum duration")
	ErrSelectionOutOfRange = errors.New("final selection count out of range")

	// External collaborator failures.
	ErrRateLimited      = errors.New("rate limited")
	ErrTransient        = errors.New("transient external failure")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrOutputMissing    = errors.New("output file missing or empty")
)

// PartialFailureError reports a batch where some items failed while the
// side effects of the successful ones were kept.
type PartialFailureError struct {
	Failed []string
	Total  int
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%d clip(s) failed: %s", len(e.Failed), strings.Join(e.Failed, ", "))
}

// IsPermanent reports whether retrying the whole job cannot change the outcome.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidJobState) ||
		errors.Is(err, ErrNoHighlights) ||
		errors.Is(err, ErrDurationUnknown)
}

// IsRateLimit reports whether err carries a rate-limit signal.
func IsRateLimit(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsRetryableCall reports whether a single external call may be attempted again.
func IsRetryableCall(err error) bool {
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrTransient) ||
		errors.Is(err, ErrMalformedPayload) ||
		errors.Is(err, ErrSelectionOutOfRange)
}
