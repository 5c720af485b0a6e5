package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/Tharunikaraja/ecommerce-backend/config"
)

// Sender delivers outbound mail. Satisfied by *Mailer; services accept the
// interface so tests can substitute a fake.
type Sender interface {
	Send(to, subject, body string) error
}

// Mailer sends plain-text email over SMTP.
type Mailer struct {
	from   string
	dialer *gomail.Dialer
}

// NewMailer creates a new Mailer from SMTP configuration.
func NewMailer(cfg config.SMTP) *Mailer {
	return &Mailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send sends a single plain-text email.
func (m *Mailer) Send(to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("no recipient specified")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}
