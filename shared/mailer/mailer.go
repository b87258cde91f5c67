package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// Config holds SMTP settings for sending email. Field tags follow the
// caarlos0/env convention so the struct can be embedded in a service config.
type Config struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// Validate checks that all required SMTP settings are present.
func (c Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("missing SMTP_HOST environment variable")
	}
	if c.Port == 0 {
		return fmt.Errorf("missing SMTP_PORT environment variable")
	}
	if c.From == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}

	return nil
}

// Mailer sends transactional email over SMTP.
type Mailer struct {
	config Config
	dialer *gomail.Dialer
}

// Email represents a single outgoing message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// New creates a Mailer from the given SMTP configuration.
func New(cfg Config) (*Mailer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Mailer{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}, nil
}

// Send delivers a single email.
func (m *Mailer) Send(email Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", email.To...)
	msg.SetHeader("Subject", email.Subject)

	if email.HTMLBody != "" {
		msg.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			msg.AddAlternative("text/plain", email.Body)
		}
	} else {
		msg.SetBody("text/plain", email.Body)
	}

	return m.dialer.DialAndSend(msg)
}

// SendActivationEmail sends the account activation link to a freshly
// registered user.
func (m *Mailer) SendActivationEmail(to, firstName, activationLink string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nPlease click the link below to activate your account:\n\n%s",
		firstName, activationLink,
	)

	return m.Send(Email{
		To:      []string{to},
		Subject: "Activate Your Account",
		Body:    body,
	})
}

// SendPasswordResetEmail sends a password reset link.
func (m *Mailer) SendPasswordResetEmail(to, firstName, resetLink string, expiresIn time.Duration) error {
	htmlBody := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset the password for your account.</p>
		<p>If you made this request, please click the link below to create a new password:</p>

		<p><a href="%s">%s</a></p>

		<p>This link will expire in %s for your security.</p>
		<p>If you did not request a password reset, you can safely ignore this email.</p>
	`, firstName, resetLink, resetLink, expiresIn)

	return m.Send(Email{
		To:       []string{to},
		Subject:  "Password Reset Request",
		HTMLBody: htmlBody,
	})
}
