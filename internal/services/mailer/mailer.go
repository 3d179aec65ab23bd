// Package mailer delivers OTP emails off the request path. Dispatch is
// a buffered in-process queue drained by a worker; the sending
// transport sits behind the Sender interface so the SMTP details never
// leak into the flows that enqueue mail.
package mailer

import (
	"fmt"
	"net/smtp"

	"quickfiss/internal/config"
)

type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender ships mail through a plain SMTP relay configured from the
// environment.
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSMTPSender() *SMTPSender {
	return &SMTPSender{
		host:     config.GetEnv("EMAIL_HOST", "localhost"),
		port:     config.GetEnv("EMAIL_PORT", "587"),
		username: config.GetEnv("EMAIL_HOST_USER", ""),
		password: config.GetEnv("EMAIL_HOST_PASSWORD", ""),
		from:     config.GetEnv("EMAIL_FROM", "no-reply@quickfiss.com"),
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := []byte("From: " + s.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}
	return smtp.SendMail(addr, auth, s.from, []string{to}, msg)
}
