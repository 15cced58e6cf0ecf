package mailer

import (
	"context"
	"encoding/base64"
	"net"
	"strings"
	"testing"
	"time"

	"jobapply-backend/internal/shared/config"
)

func TestSendHonorsContextDeadline(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	// Accept the connection but never send the SMTP greeting.
	done := make(chan struct{})
	defer close(done)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		<-done
	}()

	sender := NewSMTPSender(config.Config{
		EmailHost: "127.0.0.1",
		EmailPort: ln.Addr().(*net.TCPAddr).Port,
		EmailFrom: "me@example.com",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = sender.Send(ctx, Message{To: "hr@acme.com", Subject: "Hello", HTMLBody: "<p>hi</p>"})
	if err == nil {
		t.Fatalf("expected error from a server that never greets")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("Send blocked %s past its context deadline", elapsed)
	}
}

func TestSendDialTimeoutDefault(t *testing.T) {
	sender := NewSMTPSender(config.Config{EmailHost: "smtp.example.com", EmailPort: 587})
	if sender.timeout != defaultSMTPTimeout {
		t.Fatalf("expected default timeout %s, got %s", defaultSMTPTimeout, sender.timeout)
	}

	sender = NewSMTPSender(config.Config{EmailTimeout: 5 * time.Second})
	if sender.timeout != 5*time.Second {
		t.Fatalf("expected configured timeout, got %s", sender.timeout)
	}
}

func TestBuildMIMEWithAttachment(t *testing.T) {
	content := []byte("%PDF-1.4 payload bytes for the attachment encoder")
	raw := string(BuildMIME("me@example.com", Message{
		To:       "hr@acme.com",
		Subject:  "Application for Engineer at Acme",
		HTMLBody: "<p>Hi there,</p>",
		Attachment: &Attachment{
			Filename:    "Acme-Engineer-backend-developer-Resume.pdf",
			ContentType: "application/pdf",
			Content:     content,
		},
	}))

	for _, want := range []string{
		"From: me@example.com\r\n",
		"To: hr@acme.com\r\n",
		"Subject: Application for Engineer at Acme\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: multipart/mixed;",
		"Content-Type: text/html; charset=UTF-8",
		"<p>Hi there,</p>",
		`Content-Disposition: attachment; filename="Acme-Engineer-backend-developer-Resume.pdf"`,
		"Content-Transfer-Encoding: base64",
	} {
		if !strings.Contains(raw, want) {
			t.Fatalf("message missing %q:\n%s", want, raw)
		}
	}

	encoded := base64.StdEncoding.EncodeToString(content)
	stripped := strings.ReplaceAll(raw, "\r\n", "")
	if !strings.Contains(stripped, encoded) {
		t.Fatalf("message does not carry base64 attachment payload")
	}
}

func TestBuildMIMEWithoutAttachment(t *testing.T) {
	raw := string(BuildMIME("me@example.com", Message{
		To:       "hr@acme.com",
		Subject:  "Hello",
		HTMLBody: "<p>no attachment</p>",
	}))

	if strings.Contains(raw, "multipart/mixed") {
		t.Fatalf("plain message should not be multipart:\n%s", raw)
	}
	if !strings.Contains(raw, "Content-Type: text/html; charset=UTF-8\r\n\r\n<p>no attachment</p>") {
		t.Fatalf("expected html body after headers:\n%s", raw)
	}
}

func TestBase64LinesFoldAt76(t *testing.T) {
	raw := string(BuildMIME("me@example.com", Message{
		To:       "hr@acme.com",
		Subject:  "Hello",
		HTMLBody: "<p>body</p>",
		Attachment: &Attachment{
			Filename: "r.pdf",
			Content:  make([]byte, 600),
		},
	}))

	inPayload := false
	for _, line := range strings.Split(raw, "\r\n") {
		if strings.HasPrefix(line, "Content-Transfer-Encoding") {
			inPayload = true
			continue
		}
		if inPayload && strings.HasPrefix(line, "--") {
			break
		}
		if inPayload && len(line) > 76 {
			t.Fatalf("base64 line longer than 76 chars: %d", len(line))
		}
	}
}
