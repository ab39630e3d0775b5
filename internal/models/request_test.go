package models

import "testing"

func TestValidateLimits(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero gets default", 0, DefaultLimit},
		{"negative gets default", -3, DefaultLimit},
		{"explicit kept", 10, 10},
		{"capped at max", 500, MaxLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := RecommendationRequest{Query: "pizza", Limit: tt.limit}
			if err := req.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if req.Limit != tt.want {
				t.Errorf("limit %d, want %d", req.Limit, tt.want)
			}
		})
	}
}

func TestValidateAllowsEmptyQuery(t *testing.T) {
	req := RecommendationRequest{}
	if err := req.Validate(); err != nil {
		t.Errorf("empty query should be valid: %v", err)
	}
	if req.Limit != DefaultLimit {
		t.Errorf("limit %d", req.Limit)
	}
}
