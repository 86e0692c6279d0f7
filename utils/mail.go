package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

type EmailData struct {
	Name    string
	Message string
	Amount  string
	Code    string
}

var emailTemplates = map[string]*template.Template{
	"welcome": template.Must(template.New("welcome").Parse(
		`<p>Hi {{.Name}},</p><p>{{.Message}}</p><p>Your referral code is <strong>{{.Code}}</strong>.</p>`)),
	"withdrawal": template.Must(template.New("withdrawal").Parse(
		`<p>Hi {{.Name}},</p><p>{{.Message}}</p><p>Amount: <strong>{{.Amount}} AZN</strong></p>`)),
}

// Mailer sends HTML mail over SMTP. A Mailer without an address is disabled.
type Mailer struct {
	From     string
	Password string
	Host     string
	Address  string
}

func (m Mailer) Enabled() bool {
	return m.From != "" && m.Address != ""
}

func renderEmail(templateName, emailSubject, from string, data EmailData) ([]byte, error) {
	tmpl, ok := emailTemplates[templateName]
	if !ok {
		return nil, fmt.Errorf("unknown email template %q", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		from,
		emailSubject,
		body.String(),
	)
	return []byte(message), nil
}

func (m Mailer) SendEmail(emailTo, emailSubject, templateName string, data EmailData) error {
	if !m.Enabled() {
		return nil
	}
	message, err := renderEmail(templateName, emailSubject, m.From, data)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	if err := smtp.SendMail(m.Address, auth, m.From, []string{emailTo}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
