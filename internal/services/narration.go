package services

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the narration backend cannot produce
// text: unreachable, timed out, or a non-success status. Callers treat all
// three the same way.
var ErrUnavailable = errors.New("narration service unavailable")

// NarrationService defines the interface for the text-generation backend.
type NarrationService interface {
	// Generate produces flavor text for the prompt. The wait is bounded
	// by the service's configured timeout; one attempt, no retries.
	Generate(ctx context.Context, prompt string) (string, error)

	// Ping checks whether the backend is reachable.
	Ping(ctx context.Context) error
}
