package mailer

import (
	"context"
	"io"
	"net/mail"

	"gopkg.in/gomail.v2"
)

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   mail.Address
}

func NewSMTPMailer(host string, port int, username, password string, from mail.Address) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from.Address, s.from.Name)
	to := make([]string, 0, len(msg.To))
	for _, a := range msg.To {
		to = append(to, m.FormatAddress(a.Address, a.Name))
	}
	m.SetHeader("To", to...)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)

	switch {
	case msg.TextContent != "" && msg.HTMLContent != "":
		m.SetBody("text/plain", msg.TextContent)
		m.AddAlternative("text/html", msg.HTMLContent)
	case msg.HTMLContent != "":
		m.SetBody("text/html", msg.HTMLContent)
	default:
		m.SetBody("text/plain", msg.TextContent)
	}

	for _, a := range msg.Attachments {
		data := a.Data
		m.Attach(a.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}),
		)
	}

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
