package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"threatscope/models"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"line one\nline two", 40, "line one line two"},
		{"abcdefghij", 8, "abcde..."},
		{"ééééé", 4, "é..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := TruncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := SanitizeFilename("http://a b/c?d"); strings.ContainsAny(got, "/:? ") {
		t.Errorf("unsafe characters kept: %q", got)
	}
	if got := SanitizeFilename("   "); got != "unnamed" {
		t.Errorf("empty name = %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(250 * time.Millisecond); got != "250 ms" {
		t.Errorf("got %q", got)
	}
	if got := FormatDuration(1500 * time.Millisecond); got != "1.5 sec" {
		t.Errorf("got %q", got)
	}
}

func sampleVerdict(input string, score float64, malicious bool) models.Verdict {
	return models.Verdict{
		Mode:        models.ModeURL,
		Input:       input,
		Result:      models.AnalysisResult{SecurityScore: score, ThreatLevel: "High", IsMalicious: malicious},
		AnalyzedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		ElapsedTime: 120 * time.Millisecond,
	}
}

func TestWriteVerdict(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "verdict.yml")

	w := NewYAMLWriter(dir)
	if err := w.WriteVerdict(path, sampleVerdict("http://10.0.0.1/login", 30, true)); err != nil {
		t.Fatalf("WriteVerdict: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var rec VerdictRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if rec.Severity != "danger" || rec.Classification != "⚠️ MALICIOUS" || rec.InputType != "url" {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.Elapsed != "120 ms" {
		t.Errorf("elapsed = %q", rec.Elapsed)
	}
}

func TestWriteSession(t *testing.T) {
	dir := t.TempDir()
	w := NewYAMLWriter(dir)

	path, err := w.WriteSession("http://127.0.0.1:5000", []models.Verdict{
		sampleVerdict("http://a.test", 90, false),
		sampleVerdict("http://b.test", 20, true),
	})
	if err != nil {
		t.Fatalf("WriteSession: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("report written to %s, want inside %s", path, dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var report SessionReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if report.Total != 2 || report.Malicious != 1 || len(report.Verdicts) != 2 {
		t.Errorf("unexpected report %+v", report)
	}
}
