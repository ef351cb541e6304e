package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"techkwiz/config"
)

// Mailer dispatches password-reset mail. It is an external collaborator:
// callers treat failures as log-and-continue.
type Mailer interface {
	SendPasswordReset(toEmail, username, resetToken string) error
}

type EmailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) SendPasswordReset(toEmail, username, resetToken string) error {
	resetURL := fmt.Sprintf("%s/admin/reset-password?token=%s", s.cfg.FrontendURL, resetToken)

	if s.cfg.SMTPHost == "" {
		// No SMTP configured: log the reset link instead of sending.
		log.Printf("Password reset requested for %s (%s), reset URL: %s", username, toEmail, resetURL)
		return nil
	}

	body := fmt.Sprintf(`Hello %s,

We received a request to reset your password for the TechKwiz Admin Dashboard.
If you made this request, visit the following link to reset your password:

%s

This link will expire in 1 hour for security reasons.

If you didn't request this password reset, you can safely ignore this email.

TechKwiz Admin Dashboard`, username, resetURL)

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "TechKwiz Admin - Password Reset Request")
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUsername, s.cfg.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}
