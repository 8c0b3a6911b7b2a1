package mailer

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendStaffAlert(toEmail, subject string, lines []string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
	}
}

// SendStaffAlert mails a short HTML list of lines to the restaurant staff inbox.
func (s *emailService) SendStaffAlert(toEmail, subject string, lines []string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", strings.Join(lines, "\n"))
	m.AddAlternative("text/html", RenderAlert(subject, lines))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send staff alert to %s: %w", toEmail, err)
	}
	return nil
}

func RenderAlert(subject string, lines []string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">`)
	fmt.Fprintf(&b, "<h2>%s</h2><ul>", html.EscapeString(subject))
	for _, line := range lines {
		fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(line))
	}
	b.WriteString("</ul></div>")
	return b.String()
}
