package alerts

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

type smtpConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

var mailCfg smtpConfig
var mailProvider string

// ConfigureMailerFromEnv loads the outbound-mail configuration.
// SMTP needs SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD and
// SMTP_FROM; setting MAIL_PROVIDER=plunk switches to the Plunk API instead.
func ConfigureMailerFromEnv() error {
	mailProvider = os.Getenv("MAIL_PROVIDER")
	mailCfg = smtpConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
	if mailProvider == "plunk" {
		// Plunk credentials are read lazily on first send.
		return nil
	}
	if mailCfg.Host == "" || mailCfg.Port == "" || mailCfg.Username == "" || mailCfg.Password == "" || mailCfg.From == "" {
		return fmt.Errorf("mailer not configured: set the SMTP_* variables or MAIL_PROVIDER=plunk")
	}
	return nil
}

func buildMessage(to, subject, body string) string {
	contentType := "text/plain"
	lb := strings.ToLower(body)
	if strings.Contains(lb, "<html") || strings.Contains(lb, "<body") || strings.Contains(lb, "<!doctype html") {
		contentType = "text/html"
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", mailCfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	if rt := os.Getenv("MAIL_REPLY_TO"); rt != "" {
		fmt.Fprintf(&msg, "Reply-To: %s\r\n", rt)
	}
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: %s; charset=\"utf-8\"\r\n", contentType)
	msg.WriteString("\r\n" + body + "\r\n")
	return msg.String()
}

// SendEmail delivers one message through the configured provider.
func SendEmail(to, subject, body string) error {
	if mailCfg.Host == "" && mailProvider == "" {
		_ = ConfigureMailerFromEnv()
	}
	if mailProvider == "plunk" || (os.Getenv("PLUNK_API_KEY") != "" && mailProvider == "") {
		return sendViaPlunk(to, subject, body)
	}

	addr := mailCfg.Host + ":" + mailCfg.Port
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: mailCfg.Host})
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, mailCfg.Host)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	auth := smtp.PlainAuth("", mailCfg.Username, mailCfg.Password, mailCfg.Host)
	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := c.Mail(mailCfg.From); err != nil {
		return fmt.Errorf("mail from %s: %w", mailCfg.From, err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to %s: %w", to, err)
	}
	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err = wc.Write([]byte(buildMessage(to, subject, body))); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}
	return c.Quit()
}
