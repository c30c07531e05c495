package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendOperatorAlert(subject, body string) error
}

type emailService struct {
	dialer        *gomail.Dialer
	senderEmail   string
	operatorEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail, operatorEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:        d,
		senderEmail:   senderEmail,
		operatorEmail: operatorEmail,
	}
}

// SendOperatorAlert mails the configured operator address. Alerts are
// best-effort; callers treat a send failure as a log line, not an error.
func (s *emailService) SendOperatorAlert(subject, body string) error {
	if s.operatorEmail == "" {
		return fmt.Errorf("no operator email configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", s.operatorEmail)
	m.SetHeader("Subject", subject)

	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>GiziAI alert</h2>
			<p>%s</p>
		</div>
	`, body)

	m.SetBody("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send alert to %s: %v\n", s.operatorEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Alert sent to %s\n", s.operatorEmail)
	return nil
}
