package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"github.com/2023189465/smaforms-sub001/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const senderName = "SMA Forms Portal"

type Service interface {
	SendNotificationEmail(ctx context.Context, toEmail, recipientName, subject, message, link string) error
	SendAccountCreatedEmail(ctx context.Context, toEmail, fullName, role string) error
}

type service struct {
	client    *resend.Client
	config    *config.Config
	templates map[string]*template.Template
}

func NewService(cfg *config.Config) (Service, error) {
	templates := make(map[string]*template.Template)
	for _, name := range []string{"notification.html", "account_created.html"} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse email template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &service{
		client:    resend.NewClient(cfg.ResendAPIKey),
		config:    cfg,
		templates: templates,
	}, nil
}

func (s *service) sendEmail(toEmail, subject, templateName string, data any) error {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return fmt.Errorf("unknown email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout.html", data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", senderName, s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendNotificationEmail(ctx context.Context, toEmail, recipientName, subject, message, link string) error {
	data := struct {
		Title   string
		Name    string
		Message string
		Link    string
	}{
		Title:   subject,
		Name:    recipientName,
		Message: message,
		Link:    s.config.AppURL + link,
	}
	return s.sendEmail(toEmail, subject+" - "+senderName, "notification.html", data)
}

func (s *service) SendAccountCreatedEmail(ctx context.Context, toEmail, fullName, role string) error {
	data := struct {
		Title string
		Name  string
		Role  string
		Link  string
	}{
		Title: "Your portal account is ready",
		Name:  fullName,
		Role:  role,
		Link:  s.config.AppURL + "/login",
	}
	return s.sendEmail(toEmail, "Account created - "+senderName, "account_created.html", data)
}
