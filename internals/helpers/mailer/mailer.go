// Package mailer sends transactional email through SMTP, SendGrid or the
// console. Callers on request paths use SendAsync so that delivery
// failures never fail the request.
package mailer

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"amanah_backend/internals/configs"

	"github.com/rs/zerolog/log"
)

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Message struct {
	To          []mail.Address
	ReplyTo     string
	Subject     string
	TextContent string
	HTMLContent string
	Attachments []Attachment
}

func (m Message) HasRecipients() bool { return len(m.To) > 0 }

func (m Message) Validate() error {
	if !m.HasRecipients() {
		return fmt.Errorf("mail: no recipients")
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("mail: empty subject")
	}
	if m.TextContent == "" && m.HTMLContent == "" {
		return fmt.Errorf("mail: empty body")
	}
	return nil
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New picks the driver from MAIL_DRIVER.
func New(cfg configs.MailConfig) Mailer {
	from := mail.Address{Name: cfg.FromName, Address: cfg.FromAddress}
	switch cfg.Driver {
	case "smtp":
		return NewSMTPMailer(cfg.Host, cfg.Port, cfg.Username, cfg.Password, from)
	case "sendgrid":
		if cfg.SendgridAPIKey == "" {
			log.Warn().Msg("SENDGRID_API_KEY is empty, falling back to console mailer")
			return NewConsoleMailer(from)
		}
		return NewSendgridMailer(cfg.SendgridAPIKey, from)
	default:
		return NewConsoleMailer(from)
	}
}

// SendAsync delivers in a goroutine with its own timeout; errors are logged.
func SendAsync(m Mailer, msg Message) {
	if m == nil || !msg.HasRecipients() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := m.Send(ctx, msg); err != nil {
			log.Error().Err(err).Str("subject", msg.Subject).Msg("sending email")
		}
	}()
}

func To(name, address string) []mail.Address {
	return []mail.Address{{Name: name, Address: address}}
}
