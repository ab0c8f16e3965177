package core

import (
	"html"
	"net/mail"
	"regexp"
	"strings"
)

var (
	htmlTagRegex   = regexp.MustCompile(`<[^>]+>`)
	htmlParaRegexp = regexp.MustCompile(`</(p|div|h[1-6]|li|tr)>`)
)

type (
	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Bcc     []mail.Address
		Subject string

		// HTMLContent is the canonical body; TextContent is derived
		// from it on Render() when not set explicitly.
		HTMLContent string
		TextContent string
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

// Render finalizes the message contents: a text/plain alternative is
// derived from the HTML body so every message carries both parts.
func (m *EmailMessage) Render() error {
	if m.TextContent == "" && m.HTMLContent != "" {
		m.TextContent = htmlToText(m.HTMLContent)
	}
	return nil
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return (m.TextContent != "") || (m.HTMLContent != "") }

func htmlToText(s string) string {
	s = htmlParaRegexp.ReplaceAllString(s, "\n")
	s = strings.ReplaceAll(s, "<br>", "\n")
	s = strings.ReplaceAll(s, "<br/>", "\n")
	s = htmlTagRegex.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}
