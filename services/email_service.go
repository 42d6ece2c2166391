package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/campuscrave/campuscrave-api/config"
)

// SendVerificationEmail sends an email-verification link to a new account
func SendVerificationEmail(email, token string) error {
	cfg := config.GetConfig()
	verificationURL := fmt.Sprintf("%s/verify-email?token=%s", cfg.FrontendURL, token)
	body := fmt.Sprintf(`<p>Please verify your email by clicking <a href="%s">here</a></p>`, verificationURL)
	return sendMail(email, "Verify your email", body)
}

// SendPasswordResetEmail sends a password-reset link. The link expires in 1 hour.
func SendPasswordResetEmail(email, token string) error {
	cfg := config.GetConfig()
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", cfg.FrontendURL, token)
	body := fmt.Sprintf(`<p>You can reset your password by clicking <a href="%s">here</a>. This link expires in 1 hour.</p>`, resetURL)
	return sendMail(email, "Reset your password", body)
}

func sendMail(to, subject, htmlBody string) error {
	cfg := config.GetConfig()
	if cfg.EmailHost == "" || cfg.EmailUser == "" || cfg.EmailPass == "" || cfg.EmailFrom == "" {
		return fmt.Errorf("email is not configured")
	}

	headers := []string{
		fmt.Sprintf("From: \"CampusCrave\" <%s>", cfg.EmailFrom),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
	}
	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	addr := fmt.Sprintf("%s:%s", cfg.EmailHost, cfg.EmailPort)
	auth := smtp.PlainAuth("", cfg.EmailUser, cfg.EmailPass, cfg.EmailHost)
	if err := smtp.SendMail(addr, auth, cfg.EmailFrom, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
