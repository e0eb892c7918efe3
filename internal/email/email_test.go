package email

import (
	"strings"
	"testing"
	"time"

	"github.com/nivcodes/ainews/internal/config"
)

func validConfig() config.Email {
	return config.Email{
		From:       "digest@example.com",
		To:         "reader@example.com",
		SMTPServer: "smtp.example.com",
		SMTPPort:   465,
		User:       "digest@example.com",
		Password:   "app-password",
	}
}

func TestValidate_OK(t *testing.T) {
	if err := NewSender(validConfig()).Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestValidate_NamesMissingVariables(t *testing.T) {
	cfg := validConfig()
	cfg.To = ""
	cfg.Password = ""

	err := NewSender(cfg).Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"EMAIL_TO", "EMAIL_PASSWORD"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
	if strings.Contains(err.Error(), "EMAIL_FROM") {
		t.Errorf("error %q names a field that is present", err)
	}
}

func TestDefaultSubject(t *testing.T) {
	s := NewSender(validConfig())
	s.Now = func() time.Time { return time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC) }

	got := s.DefaultSubject()
	want := "🧠 Your AI News Digest – March 10, 2026"
	if got != want {
		t.Errorf("subject = %q, want %q", got, want)
	}
}

func TestBuildMessage(t *testing.T) {
	s := NewSender(validConfig())
	s.Now = func() time.Time { return time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC) }

	msg, err := s.buildMessage("Test Subject", []string{"a@example.com", "b@example.com"}, "<p>hello</p>")
	if err != nil {
		t.Fatal(err)
	}
	body := string(msg)

	for _, want := range []string{
		"From: digest@example.com\r\n",
		"To: a@example.com, b@example.com\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: multipart/alternative;",
		"Content-Type: text/plain; charset=utf-8",
		"Content-Type: text/html; charset=utf-8",
		"Content-Transfer-Encoding: quoted-printable",
		"<p>hello</p>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("message missing %q", want)
		}
	}
	// Closing boundary marker terminates the multipart body.
	if !strings.Contains(body, "--\r\n") {
		t.Error("message missing closing boundary")
	}
}

func TestBuildMessage_EncodesEmojiSubject(t *testing.T) {
	s := NewSender(validConfig())
	s.Now = func() time.Time { return time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC) }

	msg, err := s.buildMessage("🧠 Digest", []string{"a@example.com"}, "<p>x</p>")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(msg), "=?utf-8?") {
		t.Error("non-ASCII subject not encoded as an RFC 2047 word")
	}
	if strings.Contains(string(msg), "Subject: 🧠") {
		t.Error("raw emoji leaked into subject header")
	}
}

func TestSplitRecipients(t *testing.T) {
	got := splitRecipients(" a@example.com, b@example.com ,, c@example.com")
	want := []string{"a@example.com", "b@example.com", "c@example.com"}
	if len(got) != len(want) {
		t.Fatalf("recipients = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("recipient %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSendHTML_FailsFastOnBadConfig(t *testing.T) {
	s := NewSender(config.Email{})
	if err := s.SendHTML("subject", "<p>x</p>"); err == nil {
		t.Fatal("expected validation error before any network use")
	}
}

func TestSendAdminNotification_RequiresAddress(t *testing.T) {
	s := NewSender(validConfig())
	if err := s.SendAdminNotification("", "Run complete", "details", true); err == nil {
		t.Fatal("expected error for empty admin address")
	}
}
