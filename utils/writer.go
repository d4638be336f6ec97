package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"threatscope/models"
	"threatscope/render"
)

// VerdictRecord is the report form of one verdict.
type VerdictRecord struct {
	InputType      string  `yaml:"input_type"`
	Input          string  `yaml:"input"`
	SecurityScore  float64 `yaml:"security_score"`
	ThreatLevel    string  `yaml:"threat_level"`
	IsMalicious    bool    `yaml:"is_malicious"`
	Classification string  `yaml:"classification"`
	Severity       string  `yaml:"severity"`
	AnalyzedAt     string  `yaml:"analyzed_at"`
	Elapsed        string  `yaml:"elapsed,omitempty"`
}

type SessionReport struct {
	GeneratedAt string          `yaml:"generated_at"`
	Endpoint    string          `yaml:"endpoint"`
	Total       int             `yaml:"total"`
	Malicious   int             `yaml:"malicious"`
	Verdicts    []VerdictRecord `yaml:"verdicts"`
}

type YAMLWriter struct {
	outputDir string
}

func NewYAMLWriter(outputDir string) *YAMLWriter {
	return &YAMLWriter{outputDir: outputDir}
}

func NewVerdictRecord(v models.Verdict) VerdictRecord {
	rec := VerdictRecord{
		InputType:      v.Mode.String(),
		Input:          v.Input,
		SecurityScore:  v.Result.SecurityScore,
		ThreatLevel:    v.Result.ThreatLevel,
		IsMalicious:    v.Result.IsMalicious,
		Classification: render.Classification(v.Result.IsMalicious),
		Severity:       render.SeverityFor(v.Result.SecurityScore).String(),
		AnalyzedAt:     v.AnalyzedAt.Format(time.RFC3339),
	}
	if v.ElapsedTime > 0 {
		rec.Elapsed = FormatDuration(v.ElapsedTime)
	}
	return rec
}

// WriteVerdict writes one verdict to path, creating parent directories.
func (w *YAMLWriter) WriteVerdict(path string, v models.Verdict) error {
	return w.writeYAML(path, NewVerdictRecord(v))
}

// WriteSession writes the session's verdicts to a timestamped file in the
// output directory and returns its path.
func (w *YAMLWriter) WriteSession(endpoint string, verdicts []models.Verdict) (string, error) {
	report := SessionReport{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Endpoint:    endpoint,
		Verdicts:    make([]VerdictRecord, 0, len(verdicts)),
	}
	for _, v := range verdicts {
		report.Total++
		if v.Result.IsMalicious {
			report.Malicious++
		}
		report.Verdicts = append(report.Verdicts, NewVerdictRecord(v))
	}

	path := filepath.Join(w.outputDir, GenerateOutputFilename("session", "yml"))
	if err := w.writeYAML(path, report); err != nil {
		return "", err
	}
	return path, nil
}

func (w *YAMLWriter) writeYAML(path string, value any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := EnsureDirectory(dir); err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	header := []byte("# Threat Analysis Report\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
