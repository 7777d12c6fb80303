package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"carpool-api/config"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
	}
}

// SendWelcomeEmail greets a freshly registered user. Callers fire it
// on a goroutine; a delivery failure never fails the registration.
func (es *EmailService) SendWelcomeEmail(email, firstname string) error {
	if es == nil || !es.config.EmailEnabled {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(es.config.FromEmail, es.config.FromName))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to Carpool!")

	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your account is ready. Find a travel going your way or offer
		seats in your own car.</p>
		<p>Safe travels,<br>The Carpool Team</p>
	`, firstname)
	m.SetBody("text/html", body)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}
