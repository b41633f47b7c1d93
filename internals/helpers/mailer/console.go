package mailer

import (
	"context"
	"net/mail"
	"sync"

	"github.com/rs/zerolog/log"
)

// ConsoleMailer logs messages instead of sending them and keeps a copy.
type ConsoleMailer struct {
	from mail.Address
	mu   sync.Mutex
	sent []Message
	// FailWith makes Send return this error (tests).
	FailWith error
}

func NewConsoleMailer(from mail.Address) *ConsoleMailer {
	return &ConsoleMailer{from: from}
}

func (c *ConsoleMailer) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if c.FailWith != nil {
		return c.FailWith
	}
	c.mu.Lock()
	c.sent = append(c.sent, msg)
	c.mu.Unlock()

	to := make([]string, 0, len(msg.To))
	for _, a := range msg.To {
		to = append(to, a.String())
	}
	log.Info().
		Str("from", c.from.String()).
		Strs("to", to).
		Str("subject", msg.Subject).
		Int("attachments", len(msg.Attachments)).
		Msg("email (console)")
	log.Debug().Msg(msg.TextContent)
	return nil
}

func (c *ConsoleMailer) Sent() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.sent...)
}
