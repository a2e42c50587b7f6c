// Package mailer defines the outbound email capability. The booking
// engine depends only on the Sender interface; the concrete backend is
// chosen once at startup from configuration. Send failures are the
// caller's business to log and swallow; a failed email never rolls
// back a booking transition.
package mailer

import "context"

// Sender sends a single email-like message.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Noop discards every message. Used in tests and in environments
// without an email provider.
type Noop struct{}

func (Noop) Send(ctx context.Context, to, subject, htmlBody string) error { return nil }
