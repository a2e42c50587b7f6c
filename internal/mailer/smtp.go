package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/bestbartenders/bartender-booking/internal/config"
)

// SMTP sends mail through an SMTP relay using gomail. Each Send dials a
// fresh connection; volume is a handful of mails per booking, so
// connection reuse is not worth the bookkeeping.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTP builds an SMTP sender from configuration.
func NewSMTP(cfg config.Config) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   fmt.Sprintf("%s <%s>", cfg.MailFrom, cfg.SMTPUser),
	}
}

// Send delivers one HTML message. The context is honored only up to the
// dial; gomail does not take a context, matching the product behavior
// of waiting for the send attempt before responding.
func (s *SMTP) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return s.dialer.DialAndSend(m)
}
