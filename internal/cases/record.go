// Package cases defines the structured case record produced by the
// extraction pipeline, along with its validation schema.
package cases

// Decision outcomes a USCIS/AAO decision can carry. The extractor
// instructs the model to use exactly one of these values.
const (
	OutcomeApproved  = "approved"
	OutcomeDenied    = "denied"
	OutcomeDismissed = "dismissed"
	OutcomeSustained = "sustained"
	OutcomeWithdrawn = "withdrawn"
	OutcomeRemanded  = "remanded"
	OutcomeUnknown   = "unknown"
)

// Outcomes returns the permitted decision_outcome values in a stable order.
func Outcomes() []string {
	return []string{
		OutcomeApproved,
		OutcomeDenied,
		OutcomeDismissed,
		OutcomeSustained,
		OutcomeWithdrawn,
		OutcomeRemanded,
		OutcomeUnknown,
	}
}

// ValidOutcome reports whether s is a permitted decision_outcome value.
func ValidOutcome(s string) bool {
	for _, o := range Outcomes() {
		if s == o {
			return true
		}
	}
	return false
}

// Record is the structured result of analyzing one decision document.
// Pointer fields are nullable: the model returns null when a value is
// not explicitly stated in the source text.
type Record struct {
	CaseID              string   `json:"case_id"`
	VisaType            *string  `json:"visa_type"`
	CaseType            string   `json:"case_type"`
	BeneficiaryRole     *string  `json:"beneficiary_role"`
	DecisionOutcome     string   `json:"decision_outcome"`
	DecisionDate        *string  `json:"decision_date"`
	ServiceCenter       *string  `json:"service_center"`
	AAODocketNumber     *string  `json:"aao_docket_number"`
	RegulatoryCitations []string `json:"regulatory_citations"`
	Issues              []string `json:"issues"`
	CriteriaMet         []string `json:"criteria_met"`
	CriteriaNotMet      []string `json:"criteria_not_met"`
	ProceduralIssues    []string `json:"procedural_issues"`
	KeyEvidence         []string `json:"key_evidence"`
	RiskFactors         []string `json:"risk_factors"`
	Notes               string   `json:"notes"`
}

// NeedsFallbackID reports whether the record's case_id should be replaced
// with a locally derived identifier. The model returns "unknown" (or
// nothing) when the decision text contains no explicit case number.
func (r *Record) NeedsFallbackID() bool {
	return r.CaseID == "" || r.CaseID == "unknown"
}
