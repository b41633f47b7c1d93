package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	textTemplate "text/template"
)

const layoutHTML = `<!doctype html>
<html><body style="font-family:Arial,sans-serif;color:#222;max-width:600px;margin:auto">
<h2 style="color:#0b6e4f">{{.Org}}</h2>
{{.Body}}
<p style="color:#888;font-size:12px">{{.Org}}</p>
</body></html>`

var layout = template.Must(template.New("layout").Parse(layoutHTML))

var bodies = map[string]string{
	"verify": `<p>Hello {{.Name}},</p>
<p>Please confirm your email address to activate your account.</p>
<p><a href="{{.Link}}">Verify my email</a></p>`,

	"donation": `<p>Dear {{.Name}},</p>
<p>Thank you for your donation of <strong>{{.Amount}}</strong>.</p>
<p>Reference: {{.Reference}}</p>
{{if .Link}}<p>Your certificate is available <a href="{{.Link}}">here</a>.</p>{{end}}`,

	"volunteer": `<p>Hello {{.Name}},</p>
<p>We received your volunteer application. Our team will contact you soon.</p>`,

	"newsletter": `<p>Hello {{.Name}},</p>
<p>You are now subscribed to our newsletter.</p>
<p style="font-size:12px"><a href="{{.Link}}">Unsubscribe</a></p>`,

	"contact_reply": `<p>Hello {{.Name}},</p>
<p>{{.Body}}</p>
<hr><p style="color:#888">Your message: {{.Original}}</p>`,

	"contact_notify": `<p>New message from {{.Name}} &lt;{{.Email}}&gt;</p>
<p><strong>{{.Subject}}</strong></p><p>{{.Body}}</p>`,
}

var texts = map[string]string{
	"verify":         "Hello {{.Name}},\n\nConfirm your email: {{.Link}}\n",
	"donation":       "Dear {{.Name}},\n\nThank you for your donation of {{.Amount}}.\nReference: {{.Reference}}\n{{if .Link}}Certificate: {{.Link}}\n{{end}}",
	"volunteer":      "Hello {{.Name}},\n\nWe received your volunteer application. Our team will contact you soon.\n",
	"newsletter":     "Hello {{.Name}},\n\nYou are now subscribed to our newsletter.\nUnsubscribe: {{.Link}}\n",
	"contact_reply":  "Hello {{.Name}},\n\n{{.Body}}\n\n> {{.Original}}\n",
	"contact_notify": "New message from {{.Name}} <{{.Email}}>\n\n{{.Subject}}\n\n{{.Body}}\n",
}

// Data feeds every template; unused fields stay empty.
type Data struct {
	Org       string
	Name      string
	Email     string
	Link      string
	Amount    string
	Reference string
	Subject   string
	Body      string
	Original  string
}

// Render builds the text and HTML parts of a named template.
func Render(name string, d Data) (text string, html string, err error) {
	bodySrc, ok := bodies[name]
	if !ok {
		return "", "", fmt.Errorf("mail template %q not found", name)
	}
	bodyTpl, err := template.New(name).Parse(bodySrc)
	if err != nil {
		return "", "", err
	}
	var body bytes.Buffer
	if err := bodyTpl.Execute(&body, d); err != nil {
		return "", "", err
	}
	var page bytes.Buffer
	if err := layout.Execute(&page, map[string]any{"Org": d.Org, "Body": template.HTML(body.String())}); err != nil {
		return "", "", err
	}

	textTpl, err := textTemplate.New(name).Parse(texts[name])
	if err != nil {
		return "", "", err
	}
	var txt bytes.Buffer
	if err := textTpl.Execute(&txt, d); err != nil {
		return "", "", err
	}
	return txt.String(), page.String(), nil
}

// Build renders a template into a Message for one recipient.
func Build(name, subject, toName, toAddress string, d Data) (Message, error) {
	text, html, err := Render(name, d)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:          To(toName, toAddress),
		Subject:     subject,
		TextContent: text,
		HTMLContent: html,
	}, nil
}
