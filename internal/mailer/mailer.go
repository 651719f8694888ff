package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/go-mail/mail/v2"
)

//go:embed "templates"
var templateFS embed.FS

type Mailer interface {
	Send(recipient, templateFile string, data any) error
}

// SMTPMailer renders the subject, plainBody and htmlBody blocks of an embedded template
// and delivers them as a multipart message.
type SMTPMailer struct {
	dialer *mail.Dialer
	sender string
}

func NewSMTPMailer(host string, port int, username, password, sender string) *SMTPMailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second

	return &SMTPMailer{
		dialer: dialer,
		sender: sender,
	}
}

func (m *SMTPMailer) Send(recipient, templateFile string, data any) error {
	msg, err := m.newMessage(recipient, templateFile, data)
	if err != nil {
		return err
	}

	return m.dialer.DialAndSend(msg)
}

func (m *SMTPMailer) newMessage(recipient, templateFile string, data any) (*mail.Message, error) {
	content, err := render(templateFile, data)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", content.subject)
	msg.SetBody("text/plain", content.plainBody)
	msg.AddAlternative("text/html", content.htmlBody)

	return msg, nil
}

type renderedTemplate struct {
	subject   string
	plainBody string
	htmlBody  string
}

func render(templateFile string, data any) (*renderedTemplate, error) {
	tmpl, err := template.New("email").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", templateFile, err)
	}

	var rendered renderedTemplate

	blocks := []struct {
		name string
		dst  *string
	}{
		{"subject", &rendered.subject},
		{"plainBody", &rendered.plainBody},
		{"htmlBody", &rendered.htmlBody},
	}

	for _, block := range blocks {
		buf := new(bytes.Buffer)

		err = tmpl.ExecuteTemplate(buf, block.name, data)
		if err != nil {
			return nil, fmt.Errorf("execute %s of %s: %w", block.name, templateFile, err)
		}

		*block.dst = buf.String()
	}

	return &rendered, nil
}
