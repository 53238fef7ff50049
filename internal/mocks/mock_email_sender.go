package mocks

import (
	"context"
	"sync"

	"github.com/you/coursefinder/domain"
)

// SentEmail is a message captured by MockEmailSender
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

// MockEmailSender implements domain.EmailSender interface for testing
type MockEmailSender struct {
	SendEmailFunc func(ctx context.Context, to, subject, htmlBody string) error

	mu   sync.Mutex
	sent []SentEmail
}

// NewMockEmailSender creates a new MockEmailSender with default behaviors
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

// SendEmail records the message and succeeds unless SendEmailFunc is set
func (m *MockEmailSender) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	m.sent = append(m.sent, SentEmail{To: to, Subject: subject, Body: htmlBody})
	m.mu.Unlock()

	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, to, subject, htmlBody)
	}
	return nil
}

// Sent returns the captured messages
func (m *MockEmailSender) Sent() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentEmail(nil), m.sent...)
}

// Compile-time interface compliance verification
var _ domain.EmailSender = (*MockEmailSender)(nil)
