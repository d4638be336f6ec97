package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"threatscope/models"
)

const plainMessage = "From: \"Billing\" <billing@paypa1.example.test>\r\n" +
	"To: victim@example.test\r\n" +
	"Subject: Your account is suspended\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Verify your password immediately at http://paypa1.example.test/login\r\n"

const htmlMessage = "From: promo@example.test\r\n" +
	"Subject: Offer\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<html><body><p>Click <a href=\"http://bad.example.test\">here</a> now</p></body></html>\r\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadPlainMessage(t *testing.T) {
	in, err := LoadFile(writeFile(t, "mail.eml", plainMessage))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if in.Mode != models.ModeEmail {
		t.Errorf("mode = %v", in.Mode)
	}
	if in.Subject != "Your account is suspended" {
		t.Errorf("subject = %q", in.Subject)
	}
	if !strings.Contains(in.Text, "Verify your password immediately") {
		t.Errorf("text = %q", in.Text)
	}
}

func TestLoadHTMLOnlyMessage(t *testing.T) {
	in, err := LoadFile(writeFile(t, "promo.eml", htmlMessage))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if strings.Contains(in.Text, "<p>") {
		t.Errorf("html tags left in text: %q", in.Text)
	}
	if !strings.Contains(in.Text, "http://bad.example.test") {
		t.Errorf("link target dropped: %q", in.Text)
	}
}

func TestLoadHTMLFile(t *testing.T) {
	in, err := LoadFile(writeFile(t, "page.html", "<h1>Reset</h1><p>Enter your PIN</p>"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !strings.Contains(in.Text, "Enter your PIN") {
		t.Errorf("text = %q", in.Text)
	}
}

func TestLoadPlainFileGuessesMode(t *testing.T) {
	in, err := LoadFile(writeFile(t, "target.txt", "  http://192.168.10.5/@login\n"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if in.Mode != models.ModeURL {
		t.Errorf("mode = %v, want url", in.Mode)
	}
	if in.Text != "http://192.168.10.5/@login" {
		t.Errorf("text = %q", in.Text)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.eml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGuessMode(t *testing.T) {
	tests := map[string]models.Mode{
		"https://example.test":         models.ModeURL,
		"www.example.test/path":        models.ModeURL,
		"Dear customer, please verify": models.ModeEmail,
		"example":                      models.ModeEmail,
		"":                             models.ModeEmail,
	}
	for in, want := range tests {
		if got := GuessMode(in); got != want {
			t.Errorf("GuessMode(%q) = %v, want %v", in, got, want)
		}
	}
}
