package extract

import (
	"fmt"
	"strings"

	"github.com/imli-ai/imli/internal/cases"
)

// systemPrompt is the policy statement sent with every extraction call.
// The never-infer rule is the content-correctness contract: the model may
// only report facts explicitly stated in the decision text.
const systemPrompt = "You are an expert U.S. immigration law assistant. " +
	"Given a USCIS or AAO decision, you extract key case facts into a strict JSON object. " +
	"You NEVER guess or infer information. You ONLY extract information explicitly stated in the text."

// userPrompt builds the field-by-field extraction instruction over the
// truncated decision text.
func userPrompt(text string) string {
	quoted := make([]string, 0, len(cases.Outcomes()))
	for _, o := range cases.Outcomes() {
		quoted = append(quoted, fmt.Sprintf("%q", o))
	}
	outcomes := strings.Join(quoted, ", ")

	return fmt.Sprintf(`Read the following USCIS/AAO decision text and extract the key information into a JSON object.

Return ONLY valid JSON. Do not include any explanation or commentary, just the JSON.

IMPORTANT RULES (DO NOT BREAK THESE):
- NEVER guess, infer, approximate, assume, or fabricate any information.
- ONLY include values that are explicitly stated in the text.
- If a value is not explicitly stated, set to null (for dates/numbers) or "unknown" (for strings).
- If you are unsure, return null/unknown.
- If the field cannot be copied VERBATIM from the text, return null/unknown.

The JSON object MUST have exactly these fields:

- case_id: string (ONLY if the decision text explicitly contains a case number, AAO reference, or receipt number. If not explicitly present, set to "unknown". Do NOT infer or guess.)
- visa_type: string or null (examples: "O-1", "H-1B", "EB-2", "unknown")
- case_type: string (examples: "initial", "appeal", "motion", "unknown")
- beneficiary_role: string or null
- decision_outcome: string (one of: %s)
- decision_date: string or null (ONLY if explicitly shown. Use ISO format "YYYY-MM-DD". Do NOT infer or guess ANY dates.)
- service_center: string or null (ONLY if explicitly shown. Do NOT infer, even if hints exist.)
- aao_docket_number: string or null (ONLY if explicitly present. Never guess.)
- regulatory_citations: array of strings (ONLY citations explicitly shown)
- issues: array of strings
- criteria_met: array of strings
- criteria_not_met: array of strings
- procedural_issues: array of strings
- key_evidence: array of strings
- risk_factors: array of strings
- notes: string

If a field is not explicitly stated in the text, set it to null or "unknown" as appropriate.

Decision text:
%s`, outcomes, text)
}
