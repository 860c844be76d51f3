package mail

import (
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/Suly-ms/ThisIsNotFine/internal/config"
)

// Mailer sends transactional mail over SMTP. With no SMTP host configured it
// degrades to logging the message, which keeps local development working
// without a relay.
type Mailer struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
	logger zerolog.Logger
}

func NewMailer(cfg config.SMTPConfig, logger zerolog.Logger) *Mailer {
	m := &Mailer{cfg: cfg, logger: logger}
	if cfg.Host != "" {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

func (m *Mailer) SendVerificationCode(to, code string) error {
	subject := "Code de vérification"
	text := fmt.Sprintf("Code: %s", code)
	html := fmt.Sprintf("<p>Code: <strong>%s</strong></p>", code)

	if m == nil {
		return nil
	}
	if m.dialer == nil {
		m.logger.Info().Str("to", to).Msg("smtp not configured, skipping verification mail")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)

	return m.dialer.DialAndSend(msg)
}
