package auth

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
)

// SMTPMailer delivers verification codes through a plain SMTP relay.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (m *SMTPMailer) SendVerificationCode(_ context.Context, email, code string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Confirm your e-mail\r\n\r\nYour verification code is: %s\r\n",
		m.from, email, code,
	)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{email}, []byte(msg))
}

// DevConsoleMailer logs codes instead of sending them. Used in local dev
// and tests when no SMTP relay is configured.
type DevConsoleMailer struct {
	enabled bool
}

func NewDevConsoleMailer(enabled bool) *DevConsoleMailer {
	return &DevConsoleMailer{enabled: enabled}
}

func (m *DevConsoleMailer) SendVerificationCode(_ context.Context, email, code string) error {
	if m.enabled {
		log.Printf("[DEV-EMAIL] verification code email=%s code=%s", email, code)
	}
	return nil
}
