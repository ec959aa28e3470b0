package cases

import (
	"encoding/json"
	"testing"
)

func TestOutcomes(t *testing.T) {
	outcomes := Outcomes()
	if len(outcomes) != 7 {
		t.Fatalf("expected 7 outcomes, got %d", len(outcomes))
	}

	for _, o := range outcomes {
		if !ValidOutcome(o) {
			t.Errorf("outcome %q should be valid", o)
		}
	}

	if ValidOutcome("granted") {
		t.Error("granted should not be a valid outcome")
	}
	if ValidOutcome("") {
		t.Error("empty string should not be a valid outcome")
	}
}

func TestRecord_NeedsFallbackID(t *testing.T) {
	tests := []struct {
		name   string
		caseID string
		want   bool
	}{
		{"empty", "", true},
		{"unknown literal", "unknown", true},
		{"explicit id", "MAR122025_01B5203", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Record{CaseID: tt.caseID}
			if got := r.NeedsFallbackID(); got != tt.want {
				t.Errorf("NeedsFallbackID() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateJSON(t *testing.T) {
	valid := `{
		"case_id": "ABC123",
		"visa_type": "O-1",
		"case_type": "appeal",
		"beneficiary_role": null,
		"decision_outcome": "approved",
		"decision_date": "2025-03-12",
		"service_center": null,
		"aao_docket_number": null,
		"regulatory_citations": ["8 C.F.R. 214.2(o)"],
		"issues": [],
		"criteria_met": [],
		"criteria_not_met": [],
		"procedural_issues": [],
		"key_evidence": [],
		"risk_factors": [],
		"notes": ""
	}`

	t.Run("valid record passes", func(t *testing.T) {
		if err := ValidateJSON(json.RawMessage(valid)); err != nil {
			t.Fatalf("expected valid record, got: %v", err)
		}
	})

	t.Run("valid record round-trips", func(t *testing.T) {
		var rec Record
		if err := json.Unmarshal([]byte(valid), &rec); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if rec.CaseID != "ABC123" {
			t.Errorf("expected case_id ABC123, got %q", rec.CaseID)
		}
		if rec.VisaType == nil || *rec.VisaType != "O-1" {
			t.Errorf("expected visa_type O-1, got %v", rec.VisaType)
		}
		if rec.BeneficiaryRole != nil {
			t.Errorf("expected nil beneficiary_role, got %v", *rec.BeneficiaryRole)
		}
	})

	t.Run("rejects bad outcome", func(t *testing.T) {
		var doc map[string]any
		if err := json.Unmarshal([]byte(valid), &doc); err != nil {
			t.Fatal(err)
		}
		doc["decision_outcome"] = "granted"
		raw, _ := json.Marshal(doc)
		if err := ValidateJSON(raw); err == nil {
			t.Error("expected schema error for decision_outcome=granted")
		}
	})

	t.Run("rejects missing field", func(t *testing.T) {
		var doc map[string]any
		if err := json.Unmarshal([]byte(valid), &doc); err != nil {
			t.Fatal(err)
		}
		delete(doc, "risk_factors")
		raw, _ := json.Marshal(doc)
		if err := ValidateJSON(raw); err == nil {
			t.Error("expected schema error for missing risk_factors")
		}
	})

	t.Run("rejects extra field", func(t *testing.T) {
		var doc map[string]any
		if err := json.Unmarshal([]byte(valid), &doc); err != nil {
			t.Fatal(err)
		}
		doc["confidence"] = 0.9
		raw, _ := json.Marshal(doc)
		if err := ValidateJSON(raw); err == nil {
			t.Error("expected schema error for unexpected field")
		}
	})

	t.Run("rejects non-object", func(t *testing.T) {
		if err := ValidateJSON(json.RawMessage(`[1,2,3]`)); err == nil {
			t.Error("expected schema error for array")
		}
	})
}
