package email

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"

	"jobboard-backend/config"
)

// EmailService sends notification emails via SMTP. It implements
// domain.Notifier. When SMTP credentials are missing, sends are skipped and
// logged instead of failing, so a bare dev environment still works.
type EmailService struct {
	host        string
	port        string
	username    string
	password    string
	fromEmail   string
	frontendURL string
	log         *slog.Logger
}

func NewEmailService(cfg *config.Config, log *slog.Logger) *EmailService {
	return &EmailService{
		host:        cfg.SMTPHost,
		port:        cfg.SMTPPort,
		username:    cfg.SMTPUsername,
		password:    cfg.SMTPPassword,
		fromEmail:   cfg.SMTPFromEmail,
		frontendURL: cfg.FrontendURL,
		log:         log,
	}
}

// IsConfigured checks if the service has valid SMTP configuration.
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

const baseTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>JobBoard Notification</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .button { display: inline-block; padding: 12px 24px; background: #0066cc; color: white; text-decoration: none; border-radius: 4px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>{{.Heading}}</h1></div>
        <div class="content">{{.Body}}</div>
        <div class="footer"><p>You are receiving this email because you have a JobBoard account.</p></div>
    </div>
</body>
</html>`

var tmpl = template.Must(template.New("notification").Parse(baseTemplate))

type templateData struct {
	Heading string
	Body    template.HTML
}

// SendWelcome greets a freshly registered user.
func (s *EmailService) SendWelcome(to, name string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to JobBoard! Your account is ready.</p>"+
			"<p><a class=\"button\" href=\"%s\">Browse jobs</a></p>",
		template.HTMLEscapeString(name), s.frontendURL)
	return s.send(to, "Welcome to JobBoard!", templateData{
		Heading: "Welcome to JobBoard",
		Body:    template.HTML(body),
	})
}

// SendNewApplication notifies an employer that a candidate applied to their job.
func (s *EmailService) SendNewApplication(to, employerName, candidateName, jobTitle, applicationID string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p><strong>%s</strong> has applied for <strong>%s</strong>.</p>"+
			"<p><a class=\"button\" href=\"%s/dashboard/applications/%s\">Review application</a></p>",
		template.HTMLEscapeString(employerName),
		template.HTMLEscapeString(candidateName),
		template.HTMLEscapeString(jobTitle),
		s.frontendURL, applicationID)
	return s.send(to, fmt.Sprintf("New Application for %s", jobTitle), templateData{
		Heading: "New Application Received",
		Body:    template.HTML(body),
	})
}

// SendStatusChange notifies a candidate that their application status changed.
func (s *EmailService) SendStatusChange(to, candidateName, jobTitle, companyName, status string) error {
	subjects := map[string]string{
		"PENDING":  fmt.Sprintf("Application Received: %s", jobTitle),
		"REVIEWED": fmt.Sprintf("Application Update: %s", jobTitle),
		"ACCEPTED": fmt.Sprintf("Congratulations! Application Accepted: %s", jobTitle),
		"REJECTED": fmt.Sprintf("Application Update: %s", jobTitle),
	}
	messages := map[string]string{
		"PENDING":  "your application has been received and is pending review",
		"REVIEWED": "your application has been reviewed",
		"ACCEPTED": "your application has been accepted, congratulations!",
		"REJECTED": "your application was not selected this time",
	}
	subject, ok := subjects[status]
	if !ok {
		subject = fmt.Sprintf("Application Update: %s", jobTitle)
	}
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Regarding your application for <strong>%s</strong> at %s: %s.</p>"+
			"<p><a class=\"button\" href=\"%s/dashboard\">View your applications</a></p>",
		template.HTMLEscapeString(candidateName),
		template.HTMLEscapeString(jobTitle),
		template.HTMLEscapeString(companyName),
		messages[status], s.frontendURL)
	return s.send(to, subject, templateData{
		Heading: "Application Status Update",
		Body:    template.HTML(body),
	})
}

func (s *EmailService) send(to, subject string, data templateData) error {
	if !s.IsConfigured() {
		s.log.Info("email skipped, SMTP not configured", "to", to, "subject", subject)
		return nil
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail, to, subject, body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
