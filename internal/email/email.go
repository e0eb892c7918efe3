// Package email delivers rendered newsletters over SMTP with implicit TLS
// (SMTPS, typically port 465).
package email

import (
	"crypto/tls"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net/smtp"
	"os"
	"strings"
	"time"

	"github.com/nivcodes/ainews/internal/config"
	"github.com/nivcodes/ainews/internal/logger"
)

// Sender sends newsletter emails using the configured SMTP account.
type Sender struct {
	cfg config.Email
	Now func() time.Time
}

// NewSender creates a sender from email configuration.
func NewSender(cfg config.Email) *Sender {
	return &Sender{cfg: cfg, Now: time.Now}
}

// Validate checks that every required configuration field is present. It is
// called before dialing so misconfiguration fails fast with a clear message.
func (s *Sender) Validate() error {
	missing := []string{}
	if s.cfg.From == "" {
		missing = append(missing, "EMAIL_FROM")
	}
	if s.cfg.To == "" {
		missing = append(missing, "EMAIL_TO")
	}
	if s.cfg.SMTPServer == "" {
		missing = append(missing, "SMTP_SERVER")
	}
	if s.cfg.SMTPPort == 0 {
		missing = append(missing, "SMTP_PORT")
	}
	if s.cfg.User == "" {
		missing = append(missing, "EMAIL_USER")
	}
	if s.cfg.Password == "" {
		missing = append(missing, "EMAIL_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing email configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// DefaultSubject builds the standard newsletter subject for today.
func (s *Sender) DefaultSubject() string {
	return fmt.Sprintf("🧠 Your AI News Digest – %s", s.Now().Format("January 2, 2006"))
}

// SendHTML sends htmlContent as a multipart/alternative message to the
// configured recipients.
func (s *Sender) SendHTML(subject, htmlContent string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if subject == "" {
		subject = s.DefaultSubject()
	}

	recipients := splitRecipients(s.cfg.To)
	msg, err := s.buildMessage(subject, recipients, htmlContent)
	if err != nil {
		return err
	}

	logger.Info("📧 Sending email", "to", s.cfg.To, "subject", subject)
	if err := s.send(recipients, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	logger.Info("✅ Email sent successfully", "to", s.cfg.To)
	return nil
}

// SendFile sends the HTML file at path as the newsletter body.
func (s *Sender) SendFile(path, subject string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read HTML file %s: %w", path, err)
	}
	return s.SendHTML(subject, string(content))
}

// TestConfig verifies SMTP connectivity and authentication without sending
// anything.
func (s *Sender) TestConfig() error {
	if err := s.Validate(); err != nil {
		return err
	}
	logger.Info("🔧 Testing SMTP connection", "server", s.cfg.SMTPServer)

	client, err := s.dial()
	if err != nil {
		return err
	}
	defer client.Close()

	logger.Info("✅ Email configuration test successful")
	return nil
}

// SendTest sends a short test message to verify end-to-end delivery.
func (s *Sender) SendTest() error {
	testHTML := `<html>
<body>
  <h1>🧪 AI Newsletter Test Email</h1>
  <p>This is a test email to verify your newsletter email configuration is working correctly.</p>
  <p>If you received this email, your setup is ready to send newsletters!</p>
</body>
</html>`
	return s.SendHTML("🧪 AI Newsletter Configuration Test", testHTML)
}

// SendAdminNotification sends a short status report to the admin address,
// used by the scheduler for success/failure notices. Failures are reported
// but never fatal for the run.
func (s *Sender) SendAdminNotification(adminEmail, subject, message string, success bool) error {
	if adminEmail == "" {
		return fmt.Errorf("no admin email configured")
	}
	emoji, bg, border := "✅", "#d4edda", "#c3e6cb"
	if !success {
		emoji, bg, border = "❌", "#f8d7da", "#f5c6cb"
	}
	htmlContent := fmt.Sprintf(`<html>
<body>
  <h2>%s AI Newsletter Scheduler Report</h2>
  <p><strong>Time:</strong> %s</p>
  <p><strong>Status:</strong> %s</p>
  <div style="background-color: %s; border: 1px solid %s; padding: 15px; margin: 10px 0; border-radius: 5px;">
    <pre>%s</pre>
  </div>
</body>
</html>`, emoji, s.Now().Format("2006-01-02 15:04:05"), subject, bg, border, message)

	// Notifications go to the admin regardless of the newsletter recipients.
	saved := s.cfg.To
	s.cfg.To = adminEmail
	defer func() { s.cfg.To = saved }()
	return s.SendHTML("🤖 AI Newsletter Scheduler: "+subject, htmlContent)
}

// buildMessage assembles a MIME multipart/alternative message with a plain
// text part and the HTML body.
func (s *Sender) buildMessage(subject string, recipients []string, htmlContent string) ([]byte, error) {
	boundary := fmt.Sprintf("ainews-%d", s.Now().UnixNano())

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mimeEncodeHeader(subject))
	fmt.Fprintf(&b, "Date: %s\r\n", s.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
	if err := writeQuotedPrintable(&b, "Your email client does not support HTML. Open the attached newsletter in a browser."); err != nil {
		return nil, err
	}
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	b.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
	if err := writeQuotedPrintable(&b, htmlContent); err != nil {
		return nil, err
	}
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String()), nil
}

// dial opens the implicit-TLS connection and authenticates.
func (s *Sender) dial() (*smtp.Client, error) {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPServer, s.cfg.SMTPPort)
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.cfg.SMTPServer})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, s.cfg.SMTPServer)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.SMTPServer)
	if err := client.Auth(auth); err != nil {
		client.Close()
		return nil, fmt.Errorf("SMTP authentication failed: %w", err)
	}
	return client, nil
}

func (s *Sender) send(recipients []string, msg []byte) error {
	client, err := s.dial()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	for _, rcpt := range recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("RCPT TO %s failed: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA failed: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}
	return client.Quit()
}

func splitRecipients(to string) []string {
	parts := strings.Split(to, ",")
	recipients := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	return recipients
}

func writeQuotedPrintable(b *strings.Builder, content string) error {
	w := quotedprintable.NewWriter(b)
	if _, err := w.Write([]byte(content)); err != nil {
		return fmt.Errorf("failed to encode message body: %w", err)
	}
	return w.Close()
}

// mimeEncodeHeader wraps non-ASCII header values in RFC 2047 encoded-word
// form so emoji subjects survive transport.
func mimeEncodeHeader(value string) string {
	return mime.BEncoding.Encode("utf-8", value)
}
