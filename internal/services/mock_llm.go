package services

import (
	"context"
	"sync"

	"github.com/Extra-Chill/extrachill-blocks/pkg/chat"
)

// MockLLM is a mock implementation of LLMService for testing
type MockLLM struct {
	ChatFunc func(ctx context.Context, messages []chat.Message) (*chat.Response, error)

	// Track calls for testing
	ChatCalls [][]chat.Message

	mu sync.Mutex // protects all fields above
}

// Ensure MockLLM implements LLMService
var _ LLMService = (*MockLLM)(nil)

// NewMockLLM creates a new mock LLM service
func NewMockLLM() *MockLLM {
	return &MockLLM{
		ChatCalls: make([][]chat.Message, 0),
	}
}

func (m *MockLLM) Chat(ctx context.Context, messages []chat.Message) (*chat.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recorded := make([]chat.Message, len(messages))
	copy(recorded, messages)
	m.ChatCalls = append(m.ChatCalls, recorded)

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, messages)
	}

	// Default behavior - canned response
	return &chat.Response{Message: "mock response"}, nil
}

// CallCount returns how many Chat calls the mock has received.
func (m *MockLLM) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ChatCalls)
}

// LastCall returns the most recent message sequence, or nil.
func (m *MockLLM) LastCall() []chat.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.ChatCalls) == 0 {
		return nil
	}
	return m.ChatCalls[len(m.ChatCalls)-1]
}
