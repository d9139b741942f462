// Package email sends plain-text notifications over SMTP.
package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	address string
	dialer  *gomail.Dialer
}

// New builds a mailer sending from address through host:port,
// authenticating with the sender's password.
func New(address, password, host string, port int) *Mailer {
	return &Mailer{
		address: address,
		dialer:  gomail.NewDialer(host, port, address, password),
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.address)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}
