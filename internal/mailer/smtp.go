package mailer

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"jobapply-backend/internal/shared/config"
)

// Attachment is a binary file carried inline in the outgoing message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is a fully-rendered outgoing email.
type Message struct {
	To         string
	Subject    string
	HTMLBody   string
	Attachment *Attachment
}

// Sender delivers rendered messages. Tests substitute a recording fake.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

const defaultSMTPTimeout = 30 * time.Second

// SMTPSender delivers messages over SMTP, optionally upgrading the
// connection with STARTTLS before authenticating.
type SMTPSender struct {
	host    string
	port    int
	secure  bool
	user    string
	pass    string
	from    string
	timeout time.Duration
}

func NewSMTPSender(cfg config.Config) *SMTPSender {
	timeout := cfg.EmailTimeout
	if timeout <= 0 {
		timeout = defaultSMTPTimeout
	}
	return &SMTPSender{
		host:    cfg.EmailHost,
		port:    cfg.EmailPort,
		secure:  cfg.EmailSecure,
		user:    cfg.EmailUser,
		pass:    cfg.EmailPass,
		from:    cfg.EmailFrom,
		timeout: timeout,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	raw := BuildMIME(s.from, msg)
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	var auth smtp.Auth
	if s.user != "" && s.pass != "" {
		auth = smtp.PlainAuth("", s.user, s.pass, s.host)
	}

	conn, err := s.dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to read SMTP greeting: %w", err)
	}
	defer client.Close()

	return s.transmit(client, auth, msg.To, raw)
}

// dial opens the SMTP connection with an explicit timeout and puts a deadline
// on the connection itself, so a stalled server cannot block the caller past
// its context.
func (s *SMTPSender) dial(ctx context.Context, addr string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: s.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(s.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func (s *SMTPSender) transmit(client *smtp.Client, auth smtp.Auth, to string, raw []byte) error {
	useTLS := s.secure
	if !useTLS {
		// Opportunistic upgrade when the server offers it.
		useTLS, _ = client.Extension("STARTTLS")
	}
	if useTLS {
		if err := client.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(s.from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient %s: %w", to, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err = w.Write(raw); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

const mimeBoundary = "jobapply-mixed-boundary"

// BuildMIME renders the message into a raw RFC 2822 payload. Messages with
// an attachment become multipart/mixed with the attachment base64-encoded;
// messages without one are a plain HTML body.
func BuildMIME(from string, msg Message) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")

	if msg.Attachment == nil {
		b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		b.WriteString("\r\n")
		b.WriteString(msg.HTMLBody)
		return []byte(b.String())
	}

	fmt.Fprintf(&b, "Content-Type: multipart/mixed; boundary=%q\r\n", mimeBoundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", mimeBoundary)
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTMLBody)
	b.WriteString("\r\n")

	contentType := msg.Attachment.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	fmt.Fprintf(&b, "--%s\r\n", mimeBoundary)
	fmt.Fprintf(&b, "Content-Type: %s; name=%q\r\n", contentType, msg.Attachment.Filename)
	b.WriteString("Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&b, "Content-Disposition: attachment; filename=%q\r\n", msg.Attachment.Filename)
	b.WriteString("\r\n")
	writeBase64Wrapped(&b, msg.Attachment.Content)

	fmt.Fprintf(&b, "--%s--\r\n", mimeBoundary)
	return []byte(b.String())
}

// writeBase64Wrapped encodes the payload with lines folded at 76 characters
// as SMTP servers expect.
func writeBase64Wrapped(b *strings.Builder, content []byte) {
	encoded := base64.StdEncoding.EncodeToString(content)
	for len(encoded) > 76 {
		b.WriteString(encoded[:76])
		b.WriteString("\r\n")
		encoded = encoded[76:]
	}
	if len(encoded) > 0 {
		b.WriteString(encoded)
		b.WriteString("\r\n")
	}
}
