package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func TestEmailMessage_Render(t *testing.T) {
	ParseEmailTemplates(nopLogger{}, NewTestConfig())

	t.Run("templated", func(t *testing.T) {
		msg := &EmailMessage{
			Subject:      "Password reset",
			TemplateName: "password_reset",
			TemplateData: map[string]string{"Name": "Sara", "UID": "dWlk", "Token": "tok-en"},
			Lang:         LangArabic,
		}
		require.NoError(t, msg.Render())
		assert.Contains(t, msg.TextContent, "Hello Sara,")
		assert.Contains(t, msg.TextContent, "http://localhost:3000/reset-password?uid=dWlk&token=tok-en")
		assert.Contains(t, msg.HTMLContent, `dir="rtl"`)
		assert.True(t, msg.HasContent())
	})

	t.Run("missing data key", func(t *testing.T) {
		msg := &EmailMessage{TemplateName: "welcome", TemplateData: map[string]string{"Name": "Sara"}}
		assert.Error(t, msg.Render())
	})

	t.Run("unknown template", func(t *testing.T) {
		msg := &EmailMessage{TemplateName: "lol"}
		assert.ErrorIs(t, msg.Render(), ErrTemplateNotFound)
	})

	t.Run("plain body", func(t *testing.T) {
		msg := &EmailMessage{BodyStr: "hi"}
		require.NoError(t, msg.Render())
		assert.Equal(t, "hi", msg.TextContent)
		assert.Empty(t, msg.HTMLContent)
	})
}

func TestEmailMessage_Attach(t *testing.T) {
	msg := new(EmailMessage)
	require.NoError(t, msg.Attach(strings.NewReader("id,name\n1,Sara\n"), "students.csv", "text/csv"))
	require.True(t, msg.HasAttachments())
	at := msg.Attachments[0]
	assert.Equal(t, "students.csv", at.Filename)
	assert.Equal(t, "text/csv", at.ContentType)
	assert.Equal(t, "aWQsbmFtZQoxLFNhcmEK", at.Content.String())
}
