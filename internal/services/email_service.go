package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/imoblead/fichapro-api/internal/config"
	"github.com/imoblead/fichapro-api/internal/models"
	"github.com/imoblead/fichapro-api/pkg/logger"
	"github.com/resend/resend-go/v2"
)

//go:embed templates/email/*.html
var emailTemplates embed.FS

type EmailService struct {
	config       *config.Config
	resendClient *resend.Client
}

func NewEmailService(cfg *config.Config) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &EmailService{
		config:       cfg,
		resendClient: client,
	}
}

func (s *EmailService) SendRecoveryCode(ctx context.Context, user *models.User, code string) error {
	data := struct {
		Name    string
		Code    string
		Minutes int
		AppURL  string
	}{
		Name:    user.FullName,
		Code:    code,
		Minutes: 15,
		AppURL:  s.config.AppURL,
	}

	body, err := s.renderTemplate("reset_code.html", data)
	if err != nil {
		return err
	}

	return s.send(user.Email, "Código de recuperação de senha", body)
}

func (s *EmailService) SendAccountCreated(ctx context.Context, user *models.User) error {
	data := struct {
		Name   string
		AppURL string
	}{
		Name:   user.FullName,
		AppURL: s.config.AppURL,
	}

	body, err := s.renderTemplate("account_created.html", data)
	if err != nil {
		return err
	}

	return s.send(user.Email, "Bem-vindo ao ImobLead!", body)
}

// SendNewLeadNotification tells an admin that a visitor left contact data on
// a public ficha.
func (s *EmailService) SendNewLeadNotification(ctx context.Context, admin *models.User, lead *models.Lead, property *models.Property) error {
	data := struct {
		AdminName    string
		PropertyName string
		LeadName     string
		LeadEmail    string
		LeadPhone    string
		LeadCompany  string
		AppURL       string
	}{
		AdminName:    admin.FullName,
		PropertyName: property.Name,
		LeadName:     lead.Name,
		LeadEmail:    lead.Email,
		LeadPhone:    lead.Phone,
		LeadCompany:  lead.Company,
		AppURL:       s.config.AppURL,
	}

	body, err := s.renderTemplate("new_lead.html", data)
	if err != nil {
		return err
	}

	return s.send(admin.Email, fmt.Sprintf("Novo lead: %s", lead.Name), body)
}

func (s *EmailService) send(to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	if _, err := s.resendClient.Emails.Send(params); err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", to, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: %s", to, subject))
	return nil
}

func (s *EmailService) renderTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(emailTemplates, "templates/email/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
