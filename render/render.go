// Package render holds the presentation math behind the result view: the
// score ring, severity thresholds, classification labels and the score
// counter animation.
package render

import (
	"math"
	"time"

	"threatscope/models"
)

// RingRadius is the radius of the score ring. Circumference is rounded the
// same way the ring is drawn.
const (
	RingRadius    = 85
	Circumference = 534
)

// StrokeOffset is the unfilled part of the ring for a score. Scores are
// clamped to [0, 100] first.
func StrokeOffset(score float64) float64 {
	score = models.ClampScore(score)
	return Circumference - (score/100)*Circumference
}

// RingFill converts a stroke offset into the filled fraction of the ring.
func RingFill(offset float64) float64 {
	return (Circumference - offset) / Circumference
}

type Severity int

const (
	SeverityNeutral Severity = iota
	SeverityWarning
	SeverityDanger
)

func (s Severity) String() string {
	switch s {
	case SeverityDanger:
		return "danger"
	case SeverityWarning:
		return "warning"
	default:
		return "neutral"
	}
}

// SeverityFor maps a security score to its ring class.
func SeverityFor(score float64) Severity {
	switch {
	case score < 40:
		return SeverityDanger
	case score < 70:
		return SeverityWarning
	default:
		return SeverityNeutral
	}
}

func Classification(malicious bool) string {
	if malicious {
		return "⚠️ MALICIOUS"
	}
	return "✅ SAFE"
}

// Counter animation timing: 50 frames, 20ms apart.
const (
	CounterSteps    = 50
	CounterInterval = 20 * time.Millisecond
)

// Counter walks a displayed value from 0 to Target in CounterSteps equal
// increments.
type Counter struct {
	Target  float64
	current float64
	done    bool
}

func NewCounter(target float64) *Counter {
	target = models.ClampScore(target)
	return &Counter{Target: target, done: target <= 0}
}

// Step advances one frame and reports whether the counter reached Target.
func (c *Counter) Step() bool {
	if c.done {
		c.current = c.Target
		return true
	}
	c.current += c.Target / CounterSteps
	if c.current >= c.Target {
		c.current = c.Target
		c.done = true
	}
	return c.done
}

func (c *Counter) Value() float64 {
	return c.current
}

// Percent is the displayed counter value, rounded to a whole number.
func (c *Counter) Percent() int {
	return int(math.Round(c.current))
}

func (c *Counter) Done() bool {
	return c.done
}
