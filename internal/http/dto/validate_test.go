package dto

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/pmtrack/backend/internal/apperr"
)

func TestValidateCreateRisk(t *testing.T) {
	valid := CreateRiskRequest{
		ProjectID:   uuid.New(),
		Title:       "vendor slip",
		Probability: 3,
		Impact:      4,
	}
	if err := Validate(valid); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	tests := []struct {
		name  string
		req   CreateRiskRequest
		field string
	}{
		{"missing title", CreateRiskRequest{ProjectID: uuid.New(), Probability: 3, Impact: 3}, "title"},
		{"probability too high", CreateRiskRequest{ProjectID: uuid.New(), Title: "x", Probability: 6, Impact: 3}, "probability"},
		{"impact too low", CreateRiskRequest{ProjectID: uuid.New(), Title: "x", Probability: 3, Impact: 0}, "impact"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			var ve *apperr.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestValidateRegister(t *testing.T) {
	err := Validate(RegisterRequest{Email: "not-an-email", Password: "longenough", Name: "PM"})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) || ve.Field != "email" {
		t.Errorf("expected email validation error, got %v", err)
	}

	if err := Validate(RegisterRequest{Email: "pm@example.com", Password: "longenough", Name: "PM"}); err != nil {
		t.Errorf("valid register rejected: %v", err)
	}
}
