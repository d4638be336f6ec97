package client

import (
	"fmt"
	"log"
	"math"

	"github.com/tidwall/gjson"

	"threatscope/models"
)

// decodeResponse turns a classifier body into a result. A non-empty
// "error" field wins over any result fields sent alongside it.
func decodeResponse(body []byte) (*models.AnalysisResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not JSON", ErrMalformedResponse)
	}

	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: body is not an object", ErrMalformedResponse)
	}

	if msg := doc.Get("error"); msg.Type == gjson.String && msg.String() != "" {
		return nil, &ServerError{Message: msg.String()}
	}

	score := doc.Get("security_score")
	if score.Type != gjson.Number {
		return nil, fmt.Errorf("%w: security_score missing or not a number", ErrMalformedResponse)
	}
	value := score.Float()
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%w: security_score is not finite", ErrMalformedResponse)
	}
	if clamped := models.ClampScore(value); clamped != value {
		log.Printf("security_score %v outside [0,100], clamped to %v", value, clamped)
		value = clamped
	}

	return &models.AnalysisResult{
		SecurityScore: value,
		ThreatLevel:   doc.Get("threat_level").String(),
		IsMalicious:   doc.Get("is_malicious").Bool(),
	}, nil
}
