package email

import (
	"gopkg.in/gomail.v2"

	"inkspot_backend/internal/config"
)

// Sender отправляет уведомления по email. Отправка всегда
// fire-and-forget со стороны сервисов: сбой письма никогда
// не роняет операцию, которая его породила.
type Sender interface {
	Send(to, subject, body string) error
}

type smtpSender struct {
	cfg *config.Config
}

// NewSender возвращает SMTP-отправитель или no-op, если email
// выключен в конфигурации (локальная разработка, тесты).
func NewSender(cfg *config.Config) Sender {
	if !cfg.Email.Enabled {
		return &noopSender{}
	}
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.Email.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", renderBody(subject, body))

	d := gomail.NewDialer(
		s.cfg.Email.SMTPHost,
		s.cfg.Email.SMTPPort,
		s.cfg.Email.SMTPUsername,
		s.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}

type noopSender struct{}

func (*noopSender) Send(string, string, string) error { return nil }
