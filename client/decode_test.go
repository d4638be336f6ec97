package client

import (
	"errors"
	"testing"
)

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantScore float64
		wantErr   error
		serverMsg string
	}{
		{name: "success", body: `{"security_score":30,"threat_level":"High","is_malicious":true}`, wantScore: 30},
		{name: "empty error field ignored", body: `{"error":"","security_score":55,"threat_level":"Medium"}`, wantScore: 55},
		{name: "null error field ignored", body: `{"error":null,"security_score":70}`, wantScore: 70},
		{name: "false error field ignored", body: `{"error":false,"security_score":90,"threat_level":"Very Low"}`, wantScore: 90},
		{name: "zero error field ignored", body: `{"error":0,"security_score":64}`, wantScore: 64},
		{name: "error wins", body: `{"error":"model not trained","security_score":0}`, serverMsg: "model not trained"},
		{name: "negative score clamped", body: `{"security_score":-4}`, wantScore: 0},
		{name: "missing score", body: `{"threat_level":"Low"}`, wantErr: ErrMalformedResponse},
		{name: "garbage", body: `not json`, wantErr: ErrMalformedResponse},
		{name: "scalar", body: `42`, wantErr: ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := decodeResponse([]byte(tt.body))

			if tt.serverMsg != "" {
				var serverErr *ServerError
				if !errors.As(err, &serverErr) || serverErr.Message != tt.serverMsg {
					t.Fatalf("error = %v, want server error %q", err, tt.serverMsg)
				}
				return
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.SecurityScore != tt.wantScore {
				t.Errorf("score = %v, want %v", res.SecurityScore, tt.wantScore)
			}
		})
	}
}

func TestDecodeResponseFields(t *testing.T) {
	res, err := decodeResponse([]byte(`{"security_score":12.34,"threat_level":"Critical","is_malicious":true}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.ThreatLevel != "Critical" || !res.IsMalicious || res.SecurityScore != 12.34 {
		t.Errorf("unexpected result %+v", res)
	}
}
