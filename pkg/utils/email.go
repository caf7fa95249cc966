package utils

import "gopkg.in/gomail.v2"

// Mailer holds an SMTP dialer and the sender identity so callers only
// supply recipient, subject and body.
type Mailer struct {
	dialer *gomail.Dialer
	sender string
}

func NewMailer(host string, port int, sender string, password string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, sender, password),
		sender: sender,
	}
}

func (m *Mailer) Send(to string, subject string, body string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", m.sender)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	return m.dialer.DialAndSend(message)
}
