package factory

import (
	"time"

	"github.com/mcoot/playerhub-go/internal/dependencies/mocks"
	"github.com/mcoot/playerhub-go/internal/services/token"
	"github.com/mcoot/playerhub-go/internal/storage/memory"
)

// testSigningKey signs tokens in tests so issuance is deterministic
const testSigningKey = "test-signing-key"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() (*TestApp, error) {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	store := memory.New(mockClock)

	app, err := newWithDependencies(store, mockClock, mockRandom, token.Config{
		SigningKey: testSigningKey,
	})
	if err != nil {
		return nil, err
	}

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}, nil
}
