package email

import (
	"fmt"

	"tennis_backend/internal/config"
	"tennis_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

// Provider - абстракция почтовой доставки
type Provider interface {
	SendVerificationEmail(to, firstName, token string) error
}

// SMTPProvider отправляет письма через SMTP (gomail)
type SMTPProvider struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
	baseURL   string
}

func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	return &SMTPProvider{
		dialer: gomail.NewDialer(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUsername,
			cfg.Email.SMTPPassword,
		),
		fromEmail: cfg.Email.FromEmail,
		fromName:  cfg.Email.FromName,
		baseURL:   fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port),
	}
}

func (p *SMTPProvider) SendVerificationEmail(to, firstName, token string) error {
	verifyURL := fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s", p.baseURL, token)

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(p.fromEmail, p.fromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Confirm your email")
	m.SetBody("text/html", fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome to the tennis platform. Please confirm your email address:</p>
		<p><a href="%s">Confirm email</a></p>
		<p>If you did not register, just ignore this message.</p>
	`, firstName, verifyURL))

	return p.dialer.DialAndSend(m)
}

// LogProvider пишет токен в лог вместо отправки (dev-окружение)
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) SendVerificationEmail(to, firstName, token string) error {
	logger.Info("Email verification token (dev mode)", "to", to, "token", token)
	return nil
}

func NewProvider(cfg *config.Config) Provider {
	if cfg.Email.SMTPHost == "" {
		return NewLogProvider()
	}
	return NewSMTPProvider(cfg)
}
