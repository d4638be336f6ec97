package models

import (
	"fmt"
	"strings"
)

// Mode is the kind of input being analyzed. Only ModeEmail and ModeURL exist.
type Mode int

const (
	ModeEmail Mode = iota
	ModeURL
)

// Modes lists every mode in toggle order.
var Modes = []Mode{ModeEmail, ModeURL}

func (m Mode) String() string {
	switch m {
	case ModeEmail:
		return "email"
	case ModeURL:
		return "url"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the two known modes.
func (m Mode) Valid() bool {
	return m == ModeEmail || m == ModeURL
}

// Label is the text shown on the mode's toggle.
func (m Mode) Label() string {
	if m == ModeURL {
		return "URL"
	}
	return "Email"
}

// Placeholder returns the prompt shown in the empty input for this mode.
func (m Mode) Placeholder() string {
	if m == ModeURL {
		return "Enter suspicious URL for analysis..."
	}
	return "Enter email body for analysis..."
}

// Other returns the mode that is not m.
func (m Mode) Other() Mode {
	if m == ModeURL {
		return ModeEmail
	}
	return ModeURL
}

// ParseMode accepts "email" or "url" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "email":
		return ModeEmail, nil
	case "url":
		return ModeURL, nil
	default:
		return ModeEmail, fmt.Errorf("unknown input mode %q (want email or url)", s)
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
