package models

import (
	"encoding/json"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"email", ModeEmail, false},
		{"URL", ModeURL, false},
		{"  url ", ModeURL, false},
		{"sms", ModeEmail, true},
		{"", ModeEmail, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestModePlaceholders(t *testing.T) {
	if got := ModeEmail.Placeholder(); got != "Enter email body for analysis..." {
		t.Errorf("email placeholder = %q", got)
	}
	if got := ModeURL.Placeholder(); got != "Enter suspicious URL for analysis..." {
		t.Errorf("url placeholder = %q", got)
	}
	if ModeEmail.Other() != ModeURL || ModeURL.Other() != ModeEmail {
		t.Error("Other should flip between the two modes")
	}
	if Mode(7).Valid() {
		t.Error("Mode(7) should not be valid")
	}
}

func TestAnalysisRequestJSON(t *testing.T) {
	req := NewAnalysisRequest("  http://example.test/login \n", ModeURL)
	if req.Empty() {
		t.Fatal("request should not be empty")
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"input_text":"http://example.test/login","input_type":"url"}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}

	if !NewAnalysisRequest(" \t\n ", ModeEmail).Empty() {
		t.Error("whitespace-only input should be empty after trimming")
	}
}

func TestClampScore(t *testing.T) {
	cases := map[float64]float64{-5: 0, 0: 0, 42.5: 42.5, 100: 100, 180: 100}
	for in, want := range cases {
		if got := ClampScore(in); got != want {
			t.Errorf("ClampScore(%v) = %v, want %v", in, got, want)
		}
	}
}
