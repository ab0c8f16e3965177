package core

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailMessageRenderDerivesText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"paragraphs become lines",
			"<p><strong>Name</strong>: Ada</p>\n<p><strong>Subscribe</strong>: Yes</p>",
			"Name: Ada\n\nSubscribe: Yes",
		},
		{"line breaks", "one<br>two<br/>three", "one\ntwo\nthree"},
		{"entities unescaped", "<p>a &lt;b&gt; &amp; c</p>", "a <b> & c"},
		{"plain text untouched", "hello", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := EmailMessage{HTMLContent: tt.html}
			assert.NoError(t, msg.Render())
			assert.Equal(t, tt.want, msg.TextContent)
		})
	}
}

func TestEmailMessageRenderKeepsExplicitText(t *testing.T) {
	msg := EmailMessage{HTMLContent: "<p>html</p>", TextContent: "already set"}
	assert.NoError(t, msg.Render())
	assert.Equal(t, "already set", msg.TextContent)
}

func TestEmailMessageHasRecipientsAndContent(t *testing.T) {
	var msg EmailMessage
	assert.False(t, msg.HasRecipients())
	assert.False(t, msg.HasContent())

	msg.To = []mail.Address{{Address: "a@b.cd"}}
	msg.HTMLContent = "<p>hi</p>"
	assert.True(t, msg.HasRecipients())
	assert.True(t, msg.HasContent())
}
