package mailer

import (
	"context"

	"github.com/rs/zerolog"
)

// Console writes every message to the structured log instead of
// delivering it. Default backend for dev environments.
type Console struct {
	log zerolog.Logger
}

// NewConsole returns a Console sender logging through the given logger.
func NewConsole(log zerolog.Logger) *Console {
	return &Console{log: log}
}

func (c *Console) Send(ctx context.Context, to, subject, htmlBody string) error {
	c.log.Info().
		Str("to", to).
		Str("subject", subject).
		Int("body_bytes", len(htmlBody)).
		Msg("email (console backend)")
	return nil
}
