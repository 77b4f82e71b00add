package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"sort"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Message keys
const (
	KeyUserMail  = "user_mail"
	KeyAdminMail = "admin_mail"
)

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	Langcode  string
	SiteName  string
}

// Sender delivers composed messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Params carries the values a message is built from
type Params struct {
	UserID   int64
	UserData map[string]interface{}
}

// Manager composes keyed messages and hands them to a Sender
type Manager struct {
	config SMTPConfig
	sender Sender
	logger zerolog.Logger
}

// NewManager creates a Manager that dials the configured SMTP server
func NewManager(config SMTPConfig, logger zerolog.Logger) *Manager {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if config.UseTLS {
		dialer.SSL = true
		dialer.TLSConfig = &tls.Config{ServerName: config.Host}
	}
	return NewManagerWithSender(config, dialer, logger)
}

// NewManagerWithSender creates a Manager with an explicit Sender
func NewManagerWithSender(config SMTPConfig, sender Sender, logger zerolog.Logger) *Manager {
	if config.Langcode == "" {
		config.Langcode = "en"
	}
	return &Manager{
		config: config,
		sender: sender,
		logger: logger,
	}
}

// SendUserMail sends the registration confirmation to the new account holder
func (m *Manager) SendUserMail(ctx context.Context, to string, userID int64, userData map[string]interface{}) error {
	return m.Mail(ctx, KeyUserMail, to, Params{UserID: userID, UserData: userData})
}

// SendAdminMail notifies the site administrator about a new registration
func (m *Manager) SendAdminMail(ctx context.Context, to string, userData map[string]interface{}) error {
	return m.Mail(ctx, KeyAdminMail, to, Params{UserData: userData})
}

// Mail builds the message identified by key and sends it to the given address
func (m *Manager) Mail(ctx context.Context, key, to string, params Params) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, body, err := m.build(key, params)
	if err != nil {
		return err
	}

	// Without credentials the message is only logged (development).
	if m.config.Username == "" || m.config.Password == "" {
		m.logger.Warn().
			Str("key", key).
			Str("to", to).
			Str("subject", subject).
			Msg("SMTP credentials not configured - mail not sent")
		return nil
	}

	msg := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	msg.SetAddressHeader("From", m.config.FromEmail, m.config.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetHeader("Content-Language", m.config.Langcode)
	msg.SetBody("text/html", body)

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send %s to %s: %w", key, to, err)
	}

	m.logger.Info().Str("key", key).Str("to", to).Msg("Mail sent")
	return nil
}

type field struct {
	Name  string
	Value interface{}
}

type templateData struct {
	SiteName string
	UserID   int64
	Fields   []field
}

var bodyTemplates = map[string]*template.Template{
	KeyUserMail: template.Must(template.New(KeyUserMail).Parse(`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #333;">Welcome to {{.SiteName}}!</h2>
		<p>Your registration was successful. Your account ID is <strong>{{.UserID}}</strong>.</p>
		<table>{{range .Fields}}
			<tr><th align="left">{{.Name}}</th><td>{{.Value}}</td></tr>{{end}}
		</table>
		<p>Best regards,<br>The {{.SiteName}} Team</p>
	</div>
</body>
</html>`)),
	KeyAdminMail: template.Must(template.New(KeyAdminMail).Parse(`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #333;">New student registration</h2>
		<p>A new student registered on {{.SiteName}} with the following details:</p>
		<table>{{range .Fields}}
			<tr><th align="left">{{.Name}}</th><td>{{.Value}}</td></tr>{{end}}
		</table>
	</div>
</body>
</html>`)),
}

var subjects = map[string]string{
	KeyUserMail:  "Registration successful - %s",
	KeyAdminMail: "New student registration - %s",
}

func (m *Manager) build(key string, params Params) (subject, body string, err error) {
	tmpl, ok := bodyTemplates[key]
	if !ok {
		return "", "", fmt.Errorf("unknown mail key %q", key)
	}

	names := make([]string, 0, len(params.UserData))
	for name := range params.UserData {
		names = append(names, name)
	}
	sort.Strings(names)

	data := templateData{SiteName: m.config.SiteName, UserID: params.UserID}
	for _, name := range names {
		data.Fields = append(data.Fields, field{Name: name, Value: params.UserData[name]})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render %s: %w", key, err)
	}

	return fmt.Sprintf(subjects[key], m.config.SiteName), buf.String(), nil
}
