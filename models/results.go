package models

import (
	"math"
	"strings"
	"time"
)

type AnalysisRequest struct {
	InputText string `json:"input_text" yaml:"input_text"`
	InputType Mode   `json:"input_type" yaml:"input_type"`
}

// NewAnalysisRequest trims the input text. An empty InputText afterwards
// means the request must not be sent.
func NewAnalysisRequest(text string, mode Mode) AnalysisRequest {
	return AnalysisRequest{
		InputText: strings.TrimSpace(text),
		InputType: mode,
	}
}

func (r AnalysisRequest) Empty() bool {
	return r.InputText == ""
}

type AnalysisResult struct {
	SecurityScore float64 `json:"security_score" yaml:"security_score"`
	ThreatLevel   string  `json:"threat_level" yaml:"threat_level"`
	IsMalicious   bool    `json:"is_malicious" yaml:"is_malicious"`
}

// ClampScore limits a security score to [0, 100].
func ClampScore(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}

// Verdict is one finished analysis as kept in the session history and
// written to reports.
type Verdict struct {
	Mode        Mode           `json:"input_type" yaml:"input_type"`
	Input       string         `json:"input" yaml:"input"`
	Result      AnalysisResult `json:"result" yaml:"result"`
	AnalyzedAt  time.Time      `json:"analyzed_at" yaml:"analyzed_at"`
	ElapsedTime time.Duration  `json:"elapsed" yaml:"elapsed"`
}
