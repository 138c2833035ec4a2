package email

// Provider sends transactional email. Delivery is best effort: the callers
// treat failures as non-fatal and only log them.
type Provider interface {
	Send(to, subject, body string) error
	Close() error
}
