package mail

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/orionte/placement-api/internal/infra/queue"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendConversionNotice welcomes a freshly converted client and tells them
// what the pipeline does next.
func (s *EmailSender) SendConversionNotice(ctx context.Context, payload queue.ConversionPayload) error {
	data := ConversionEmailData{
		Name:      payload.Name,
		LeadID:    payload.LeadID,
		PaidTotal: payload.PaidTotal,
	}

	tmplPath := filepath.Join("templates", "conversion.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("failed to read email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", payload.Email)
	m.SetHeader("Subject", fmt.Sprintf("Welcome aboard, %s! Your placement journey has started", payload.Name))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send SMTP email: %w", err)
	}

	return nil
}
