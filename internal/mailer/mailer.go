package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
)

// Mailer delivers confirmation codes. Delivery failures propagate to
// the caller; the API treats them as server errors.
type Mailer interface {
	SendConfirmationCode(to, username, code string) error
}

// SMTPMailer sends plain-text mail through an unauthenticated relay.
type SMTPMailer struct {
	Addr string // host:port
	From string
}

func NewSMTPMailer(addr, from string) *SMTPMailer {
	return &SMTPMailer{Addr: addr, From: from}
}

func (m *SMTPMailer) SendConfirmationCode(to, username, code string) error {
	body := fmt.Sprintf(
		"To: %s\r\nSubject: ReviewHub registration\r\n\r\n"+
			"To finish registration, send a request with username %s and "+
			"confirmation code %s to the /api/v1/auth/token endpoint.\r\n",
		to, username, code,
	)
	if err := smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(body)); err != nil {
		return fmt.Errorf("failed to send confirmation mail: %w", err)
	}
	return nil
}

// LogMailer writes codes to the log instead of sending mail. Used in
// development and tests when SMTP_ADDR is unset.
type LogMailer struct {
	Logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{Logger: logger}
}

func (m *LogMailer) SendConfirmationCode(to, username, code string) error {
	m.Logger.Info("confirmation code issued",
		"to", to,
		"username", username,
		"code", code,
	)
	return nil
}
