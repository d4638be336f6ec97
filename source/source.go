// Package source loads analysis input from files. RFC 822 messages are
// parsed with enmime and HTML is flattened to text so the classifier sees
// what a reader would see.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaytaylor/html2text"
	"github.com/jhillyerd/enmime"

	"threatscope/models"
)

// MaxInputBytes bounds how much of a file is read.
const MaxInputBytes = 4 << 20

// Input is text ready to be analyzed together with the mode it implies.
type Input struct {
	Text    string
	Mode    models.Mode
	Subject string
	From    string
}

// LoadFile reads path and converts it by extension: .eml messages yield
// their body, .html/.htm pages their text, anything else is used as is.
// Plain files holding a single URL on one line are treated as URL input.
func LoadFile(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxInputBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".eml":
		return FromMessage(bytes.NewReader(data))
	case ".html", ".htm":
		text, err := HTMLToText(string(data))
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", path, err)
		}
		return &Input{Text: text, Mode: models.ModeEmail}, nil
	default:
		text := strings.TrimSpace(string(data))
		return &Input{Text: text, Mode: GuessMode(text)}, nil
	}
}

// FromMessage extracts the body of a MIME message. The plain text part is
// preferred; an HTML-only message is converted to text.
func FromMessage(r io.Reader) (*Input, error) {
	env, err := enmime.ReadEnvelope(r)
	if err != nil {
		return nil, fmt.Errorf("parse message: %w", err)
	}

	text := strings.TrimSpace(env.Text)
	if text == "" && env.HTML != "" {
		text, err = HTMLToText(env.HTML)
		if err != nil {
			return nil, fmt.Errorf("convert message html: %w", err)
		}
	}

	return &Input{
		Text:    text,
		Mode:    models.ModeEmail,
		Subject: env.GetHeader("Subject"),
		From:    env.GetHeader("From"),
	}, nil
}

// HTMLToText keeps link targets because they matter to the classifier.
func HTMLToText(html string) (string, error) {
	text, err := html2text.FromString(html, html2text.Options{})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// GuessMode returns ModeURL for a single token that looks like a URL.
func GuessMode(text string) models.Mode {
	text = strings.TrimSpace(text)
	if text == "" || strings.ContainsAny(text, " \t\n") {
		return models.ModeEmail
	}
	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "www.") {
		return models.ModeURL
	}
	return models.ModeEmail
}
