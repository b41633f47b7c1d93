package mailer

import (
	"context"
	"errors"
	"net/mail"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEscapesHTMLButNotText(t *testing.T) {
	text, html, err := Render("contact_reply", Data{Org: "Org", Name: "<b>Ann</b>", Body: "Thanks", Original: "hi"})
	require.NoError(t, err)
	assert.Contains(t, html, "&lt;b&gt;Ann&lt;/b&gt;")
	assert.Contains(t, text, "<b>Ann</b>")
	assert.Contains(t, html, "<h2")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, err := Render("nope", Data{})
	assert.Error(t, err)
}

func TestConsoleMailerRecordsMessages(t *testing.T) {
	m := NewConsoleMailer(mail.Address{Address: "no-reply@example.org"})
	msg, err := Build("verify", "Verify", "Ann", "ann@example.org", Data{Name: "Ann", Link: "http://x/verify"})
	require.NoError(t, err)

	require.NoError(t, m.Send(context.Background(), msg))
	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ann@example.org", sent[0].To[0].Address)
	assert.Contains(t, sent[0].TextContent, "http://x/verify")
}

func TestMessageValidate(t *testing.T) {
	assert.Error(t, Message{Subject: "s", TextContent: "t"}.Validate())
	assert.Error(t, Message{To: To("", "a@b.c"), TextContent: "t"}.Validate())
	assert.Error(t, Message{To: To("", "a@b.c"), Subject: "s"}.Validate())
	assert.NoError(t, Message{To: To("", "a@b.c"), Subject: "s", HTMLContent: "<p>x</p>"}.Validate())
}

func TestSendAsyncSwallowsErrors(t *testing.T) {
	m := NewConsoleMailer(mail.Address{})
	m.FailWith = errors.New("smtp down")
	msg := Message{To: To("", "a@b.c"), Subject: "s", TextContent: "t"}

	assert.NotPanics(t, func() { SendAsync(m, msg) })
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, m.Sent())
}
