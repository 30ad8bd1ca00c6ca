package services

import (
	"context"
	"sync"
)

// MockNarrationService is a test double for NarrationService.
type MockNarrationService struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
	PingFunc     func(ctx context.Context) error

	// Track calls for testing
	GenerateCalls []string
	PingCalls     int

	mu sync.Mutex // protects all fields above
}

// Ensure MockNarrationService implements NarrationService.
var _ NarrationService = (*MockNarrationService)(nil)

// NewMockNarrationService creates a new mock narration service.
func NewMockNarrationService() *MockNarrationService {
	return &MockNarrationService{
		GenerateCalls: make([]string, 0),
	}
}

// Generate mocks text generation. Default behavior returns canned text.
func (m *MockNarrationService) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GenerateCalls = append(m.GenerateCalls, prompt)

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "Mock narration", nil
}

// Ping mocks the reachability check. Default behavior is success.
func (m *MockNarrationService) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PingCalls++

	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// SetGenerateResponse sets up the mock to return fixed text.
func (m *MockNarrationService) SetGenerateResponse(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return text, nil
	}
}

// SetGenerateError sets up the mock to return an error on Generate.
func (m *MockNarrationService) SetGenerateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", err
	}
}

// SetUnavailable forces every call to fail with ErrUnavailable.
func (m *MockNarrationService) SetUnavailable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", ErrUnavailable
	}
	m.PingFunc = func(ctx context.Context) error {
		return ErrUnavailable
	}
}

// GetGenerateCalls returns a copy of the recorded prompts.
func (m *MockNarrationService) GetGenerateCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]string, len(m.GenerateCalls))
	copy(calls, m.GenerateCalls)
	return calls
}

// Reset clears all call tracking.
func (m *MockNarrationService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateCalls = make([]string, 0)
	m.PingCalls = 0
}
