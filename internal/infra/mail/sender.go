package mail

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Sender delivers one message and reports the Message-ID it was sent
// under. Implementations own the transport; callers own error handling.
type Sender interface {
	Send(msg Message) (string, error)
}

// SMTPSender holds a single gomail dialer for the process lifetime.
type SMTPSender struct {
	dialer *gomail.Dialer
	host   string
}

func NewSMTPSender(host string, port int, user, password string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, user, password),
		host:   host,
	}
}

func (s *SMTPSender) Send(msg Message) (string, error) {
	// SMTP gives nothing back on success, so the id is assigned here and
	// stamped on the message before dialing.
	messageID := fmt.Sprintf("<%s@%s>", uuid.New().String(), s.host)

	m := gomail.NewMessage()
	m.SetHeader("Message-ID", messageID)
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.TextBody)
	m.AddAlternative("text/html", msg.HTMLBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("smtp send failed: %w", err)
	}

	return messageID, nil
}
