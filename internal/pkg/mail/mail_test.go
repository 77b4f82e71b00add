package mail

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingSender struct {
	messages []*gomail.Message
	err      error
}

func (s *recordingSender) DialAndSend(m ...*gomail.Message) error {
	s.messages = append(s.messages, m...)
	return s.err
}

func testConfig() SMTPConfig {
	return SMTPConfig{
		Host:      "smtp.example.edu",
		Port:      587,
		Username:  "mailer",
		Password:  "secret",
		FromName:  "Student Portal",
		FromEmail: "no-reply@example.edu",
		SiteName:  "Student Portal",
	}
}

func TestSendUserMail(t *testing.T) {
	sender := &recordingSender{}
	manager := NewManagerWithSender(testConfig(), sender, zerolog.Nop())

	err := manager.SendUserMail(context.Background(), "jane@example.edu", 7, map[string]interface{}{
		"full_name": "Jane <Doe>",
		"email":     "jane@example.edu",
	})
	require.NoError(t, err)
	require.Len(t, sender.messages, 1)

	msg := sender.messages[0]
	assert.Equal(t, []string{"jane@example.edu"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Registration successful - Student Portal"}, msg.GetHeader("Subject"))

	_, raw, err := manager.build(KeyUserMail, Params{UserID: 7, UserData: map[string]interface{}{
		"full_name": "Jane <Doe>",
		"email":     "jane@example.edu",
	}})
	require.NoError(t, err)
	assert.Contains(t, raw, "<strong>7</strong>")
	assert.Contains(t, raw, "Jane &lt;Doe&gt;")
	assert.Less(t, strings.Index(raw, "email"), strings.Index(raw, "full_name"))
}

func TestSendAdminMail(t *testing.T) {
	sender := &recordingSender{}
	manager := NewManagerWithSender(testConfig(), sender, zerolog.Nop())

	require.NoError(t, manager.SendAdminMail(context.Background(), "admin@example.edu", map[string]interface{}{"stream": int64(3)}))
	require.Len(t, sender.messages, 1)
	assert.Equal(t, []string{"admin@example.edu"}, sender.messages[0].GetHeader("To"))

	var buf bytes.Buffer
	_, err := sender.messages[0].WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "New student registration")
}

func TestMailSenderFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("connection refused")}
	manager := NewManagerWithSender(testConfig(), sender, zerolog.Nop())

	err := manager.SendAdminMail(context.Background(), "admin@example.edu", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin_mail")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMailWithoutCredentialsIsSkipped(t *testing.T) {
	cfg := testConfig()
	cfg.Password = ""
	sender := &recordingSender{}
	manager := NewManagerWithSender(cfg, sender, zerolog.Nop())

	require.NoError(t, manager.SendUserMail(context.Background(), "jane@example.edu", 1, nil))
	assert.Empty(t, sender.messages)
}

func TestMailUnknownKey(t *testing.T) {
	manager := NewManagerWithSender(testConfig(), &recordingSender{}, zerolog.Nop())

	err := manager.Mail(context.Background(), "bogus", "x@example.edu", Params{})
	assert.Error(t, err)
}
