package service

import (
	"errors"
	"fmt"
	"html"
	"mime"
	"net/smtp"
)

// ErrNotConfigured is returned by Send when no mail credentials are set.
var ErrNotConfigured = errors.New("mail credentials are not configured")

type EmailService struct {
	username      string
	password      string
	from          string
	host          string
	port          string
	testEmailOnly string // If set, all emails go to this address (for testing)
	sendMailFn    func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailService creates a new email service using SMTP. Credentials are
// checked on every send, so a service without them is still usable and
// reports ErrNotConfigured.
func NewEmailService(smtpHost, smtpPort, username, password, fromEmail, testEmailOnly string) *EmailService {
	if fromEmail == "" {
		fromEmail = username
	}
	return &EmailService{
		username:      username,
		password:      password,
		from:          fromEmail,
		host:          smtpHost,
		port:          smtpPort,
		testEmailOnly: testEmailOnly,
		sendMailFn:    smtp.SendMail,
	}
}

// Send submits one message. smtp.SendMail upgrades the connection with
// STARTTLS and PlainAuth refuses to authenticate over an unencrypted link.
func (s *EmailService) Send(to, subject, body string, isHTML bool) error {
	if s.username == "" || s.password == "" {
		return ErrNotConfigured
	}

	// Override recipient for testing if TEST_EMAIL_ONLY is set
	actualRecipient := to
	if s.testEmailOnly != "" {
		actualRecipient = s.testEmailOnly
		if to != actualRecipient {
			body = testModeNote(to, isHTML) + body
		}
	}

	message := s.buildMessage(actualRecipient, subject, body, isHTML)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := s.host + ":" + s.port

	if err := s.sendMailFn(addr, auth, s.from, []string{actualRecipient}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", actualRecipient, err)
	}
	return nil
}

func (s *EmailService) buildMessage(to, subject, body string, isHTML bool) string {
	contentType := "text/plain"
	if isHTML {
		contentType = "text/html"
	}
	return fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: %s; charset=UTF-8\r\n"+
		"\r\n"+
		"%s", s.from, to, mime.QEncoding.Encode("utf-8", subject), contentType, body)
}

func testModeNote(originalRecipient string, isHTML bool) string {
	if isHTML {
		return fmt.Sprintf("<p>[TEST MODE] Original recipient: %s</p>\n", html.EscapeString(originalRecipient))
	}
	return fmt.Sprintf("[TEST MODE] Original recipient: %s\n\n", originalRecipient)
}
