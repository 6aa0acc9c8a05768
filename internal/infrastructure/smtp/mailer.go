package smtp

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"github.com/go-med-reminder/internal/config"
)

// dialTimeout bounds the whole SMTP exchange so a stuck mail server cannot
// hold up a login request indefinitely.
const dialTimeout = 10 * time.Second

// Mailer delivers one-time login codes.
type Mailer interface {
	SendOTP(to, code string, validity time.Duration) error
}

type mailer struct {
	host       string
	port       string
	from       string
	username   string
	password   string
	skipVerify bool
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:       cfg.SMTPHost,
		port:       cfg.SMTPPort,
		from:       cfg.SMTPFrom,
		username:   cfg.SMTPUsername,
		password:   cfg.SMTPPassword,
		skipVerify: cfg.SMTPSkipVerify,
	}
}

func (m *mailer) SendOTP(to, code string, validity time.Duration) error {
	subject := "Reminder"
	body := fmt.Sprintf("Ihr Login-Code lautet: %s\r\n\r\nDer Code ist %d Minuten gültig.", code, int(validity.Minutes()))
	return m.send(to, subject, body)
}

func (m *mailer) send(to, subject, body string) error {
	addr := net.JoinHostPort(m.host, m.port)
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(dialTimeout))

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	tlsCfg := &tls.Config{ServerName: m.host}
	if m.skipVerify {
		// Only for internal mail servers with self-signed certificates.
		tlsCfg.InsecureSkipVerify = true
	}
	if err := c.StartTLS(tlsCfg); err != nil {
		return fmt.Errorf("smtp starttls: %w", err)
	}
	if m.username != "" {
		if err := c.Auth(smtp.PlainAuth("", m.username, m.password, m.host)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := c.Mail(m.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s", m.from, to, subject, body)
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("smtp write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close body: %w", err)
	}
	return c.Quit()
}
