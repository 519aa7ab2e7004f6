package jobs

import (
	"fmt"
	"log/slog"
	"net/smtp"
)

// Mailer sends plain-text mail over SMTP. With no host configured it
// logs the message instead, which keeps local development working
// without a mail server.
type Mailer struct {
	host   string
	port   int
	user   string
	pass   string
	from   string
	logger *slog.Logger
}

func NewMailer(host string, port int, user, pass, from string, logger *slog.Logger) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from, logger: logger}
}

func (m *Mailer) Send(to, subject, body string) error {
	if m.host == "" {
		m.logger.Info("mail skipped, no smtp host", "to", to, "subject", subject)
		return nil
	}

	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	return smtp.SendMail(addr, auth, m.from, []string{to}, msg)
}
