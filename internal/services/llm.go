package services

import (
	"context"

	"github.com/Extra-Chill/extrachill-blocks/pkg/chat"
)

// LLMService is the single chokepoint for calls to the external AI
// provider. Provider and model selection happen when the concrete service
// is constructed; nothing upstream chooses models per request.
type LLMService interface {
	// Chat sends one ordered message sequence and returns the normalized
	// response. Failures are returned as errors, never panics; the caller
	// decides per call whether a failure is fatal to the request.
	Chat(ctx context.Context, messages []chat.Message) (*chat.Response, error)
}

// HealthChecker defines basic health check capabilities
type HealthChecker interface {
	// Ping tests the service connection
	Ping(ctx context.Context) error
}

// Closer defines cleanup capabilities
type Closer interface {
	// Close closes the service connection
	Close() error
}
