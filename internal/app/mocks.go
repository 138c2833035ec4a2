package app

import "brushwork_backend/internal/logger"

// MockEmailProvider logs instead of sending. Used when email is disabled
// in config and in local development.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(to, subject, body string) error {
	logger.Info("Mock email", "to", to, "subject", subject)
	return nil
}

func (m *MockEmailProvider) Close() error { return nil }
