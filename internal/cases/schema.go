package cases

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchemaJSON is the canonical schema for model output. Every field
// of the extraction contract must be present; nullable fields accept null;
// decision_outcome is restricted to the permitted enum values.
const recordSchemaJSON = `{
  "type": "object",
  "additionalProperties": false,
  "required": [
    "case_id", "visa_type", "case_type", "beneficiary_role",
    "decision_outcome", "decision_date", "service_center",
    "aao_docket_number", "regulatory_citations", "issues",
    "criteria_met", "criteria_not_met", "procedural_issues",
    "key_evidence", "risk_factors", "notes"
  ],
  "properties": {
    "case_id":           {"type": ["string", "null"]},
    "visa_type":         {"type": ["string", "null"]},
    "case_type":         {"type": ["string", "null"]},
    "beneficiary_role":  {"type": ["string", "null"]},
    "decision_outcome":  {"enum": ["approved", "denied", "dismissed", "sustained", "withdrawn", "remanded", "unknown"]},
    "decision_date":     {"type": ["string", "null"]},
    "service_center":    {"type": ["string", "null"]},
    "aao_docket_number": {"type": ["string", "null"]},
    "regulatory_citations": {"type": ["array", "null"], "items": {"type": "string"}},
    "issues":            {"type": ["array", "null"], "items": {"type": "string"}},
    "criteria_met":      {"type": ["array", "null"], "items": {"type": "string"}},
    "criteria_not_met":  {"type": ["array", "null"], "items": {"type": "string"}},
    "procedural_issues": {"type": ["array", "null"], "items": {"type": "string"}},
    "key_evidence":      {"type": ["array", "null"], "items": {"type": "string"}},
    "risk_factors":      {"type": ["array", "null"], "items": {"type": "string"}},
    "notes":             {"type": ["string", "null"]}
  }
}`

var recordSchema = jsonschema.MustCompileString("record.json", recordSchemaJSON)

// ValidateJSON checks a raw model response against the record schema.
func ValidateJSON(raw json.RawMessage) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to decode record for validation: %w", err)
	}
	if err := recordSchema.Validate(doc); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
