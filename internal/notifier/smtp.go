package notifier

import (
	"fmt"
	"strings"

	"github.com/vbreban/accounts-backend/internal/config"
	"gopkg.in/gomail.v2"
)

// SMTPNotifier relays verification mail through an authenticated SMTP
// submission endpoint (STARTTLS on 587 by default).
type SMTPNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
	baseURL  string
}

func NewSMTP(cfg *config.Config) *SMTPNotifier {
	return &SMTPNotifier{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
	}
}

func (n *SMTPNotifier) SendVerification(email, token string) error {
	link := fmt.Sprintf("%s/api/users/verify/%s", n.baseURL, token)

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Email Verification")
	m.SetBody("text/plain", "Please verify your email by clicking on the following link: "+link)

	d := gomail.NewDialer(n.host, n.port, n.username, n.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}
