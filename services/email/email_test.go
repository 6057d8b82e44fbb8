package emailsvc

import (
	"bytes"
	"net/mail"
	"sync"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nebras-project/nebras-dashboard/core"
)

type recLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *recLogger) Debug(string, ...interface{}) {}
func (l *recLogger) Info(string, ...interface{})  {}
func (l *recLogger) Warn(string, ...interface{})  {}
func (l *recLogger) Error(msg string, _ ...interface{}) {
	l.mu.Lock()
	l.errors = append(l.errors, msg)
	l.mu.Unlock()
}
func (l *recLogger) Fatal(string, ...interface{}) {}

func TestConsoleService(t *testing.T) {
	conf := core.NewTestConfig()
	core.ParseEmailTemplates(&recLogger{}, conf)

	var out bytes.Buffer
	svc := NewConsoleServiceMock(conf, &recLogger{})
	svc.out = &out

	svc.SendMessages(
		&core.EmailMessage{
			To:           []mail.Address{{Name: "Sara", Address: "sara@nebras.sa"}},
			Subject:      "Welcome",
			TemplateName: "welcome",
			Lang:         core.LangArabic,
			TemplateData: map[string]string{"Name": "Sara", "Username": "sara"},
		},
		&core.EmailMessage{Subject: "no recipients", BodyStr: "hello"},
	)

	sent := svc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "Welcome", sent[0].Subject)
	assert.Contains(t, out.String(), "Subject: [Nebras] Welcome")
	assert.Contains(t, out.String(), "Content-Language: ar")
	assert.Contains(t, out.String(), "text/html")

	svc.Reset()
	assert.Empty(t, svc.SentMessages())
}

func TestSendgridService_send(t *testing.T) {
	conf := core.NewTestConfig()
	conf.SendgridApiKey = "key"
	logger := &recLogger{}
	svc := NewSendgridService(conf, logger)

	var got rest.Request
	origSend := sendFunc
	defer func() { sendFunc = origSend }()
	sendFunc = func(req rest.Request) (*rest.Response, error) {
		got = req
		return &rest.Response{StatusCode: 400, Body: "bad"}, nil
	}

	msg := core.EmailMessage{
		To:          []mail.Address{{Name: "Sara", Address: "sara@nebras.sa"}},
		Cc:          []mail.Address{{Address: "omar@nebras.sa"}},
		Subject:     "Password reset",
		TextContent: "reset",
	}
	m := svc.prepare(msg)
	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "[Nebras] Password reset", m.Personalizations[0].Subject)
	assert.Len(t, m.Personalizations[0].CC, 1)
	assert.Len(t, m.Content, 1, "no html part without html content")

	svc.send(msg)
	assert.Equal(t, rest.Post, got.Method)
	assert.Equal(t, host+endpoint, got.BaseURL)
	assert.Equal(t, "Bearer key", got.Headers["Authorization"])
	if assert.Len(t, logger.errors, 1) {
		assert.Contains(t, logger.errors[0], "status: 400")
	}
}
