// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package validation

import (
	"strings"
	"testing"
)

type queryPayload struct {
	Target string `json:"target" validate:"required"`
	TopK   int    `json:"top_k" validate:"gte=0,lte=1000"`
}

func TestValidateStructPasses(t *testing.T) {
	if err := ValidateStruct(&queryPayload{Target: "2024-03-18 19:30", TopK: 10}); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}
}

func TestValidateStructReportsFields(t *testing.T) {
	err := ValidateStruct(&queryPayload{TopK: -5})
	if err == nil {
		t.Fatal("invalid payload accepted")
	}

	fields := make(map[string]string)
	for _, fe := range err.Errors() {
		fields[fe.Field()] = fe.Tag()
	}
	if fields["Target"] != "required" {
		t.Errorf("Target violation = %q, want required", fields["Target"])
	}
	if fields["TopK"] != "gte" {
		t.Errorf("TopK violation = %q, want gte", fields["TopK"])
	}
}

func TestToAPIError(t *testing.T) {
	err := ValidateStruct(&queryPayload{})
	if err == nil {
		t.Fatal("invalid payload accepted")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "required") {
		t.Errorf("message %q does not explain the violation", apiErr.Message)
	}
}
