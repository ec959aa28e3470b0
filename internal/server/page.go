package server

import (
	"html/template"
	"net/http"

	"github.com/imli-ai/imli/internal/cases"
)

// pageData feeds the analyzer page template.
type pageData struct {
	URL      string
	Error    string
	Record   *cases.Record
	JSONText string
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"orUnknown": func(s *string) string {
		if s == nil || *s == "" {
			return "unknown"
		}
		return *s
	},
}).Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Imli – USCIS Case Analyzer</title>
    <style>
        body { font-family: system-ui, -apple-system, BlinkMacSystemFont, sans-serif; margin: 2rem; max-width: 900px; }
        h1 { margin-bottom: 0.5rem; }
        form { margin-bottom: 1.5rem; }
        input[type="text"] { width: 100%; padding: 0.5rem; font-size: 1rem; }
        button { padding: 0.5rem 1rem; font-size: 1rem; cursor: pointer; }
        .error { color: #b00020; margin-bottom: 1rem; }
        .card { border: 1px solid #ddd; border-radius: 8px; padding: 1rem; margin-top: 1rem; }
        .field-label { font-weight: 600; }
        pre { background: #f6f6f6; padding: 1rem; border-radius: 6px; overflow-x: auto; }
        ul { padding-left: 1.2rem; }
    </style>
</head>
<body>
    <h1>Imli – USCIS/AAO Case Analyzer</h1>
    <p>Paste a direct USCIS/AAO PDF URL below. Imli will fetch the decision, extract the text, and return a structured analysis.</p>

    <form method="POST">
        <label for="url"><strong>USCIS/AAO PDF URL</strong></label><br>
        <input type="text" id="url" name="url" value="{{.URL}}" placeholder="https://www.uscis.gov/sites/default/files/err/.../DECISION.pdf">
        <br><br>
        <button type="submit">Analyze</button>
    </form>

    {{if .Error}}
        <div class="error">{{.Error}}</div>
    {{end}}

    {{with .Record}}
        <div class="card">
            <h2>Case Overview</h2>
            <p><span class="field-label">Case ID:</span> {{.CaseID}}</p>
            <p><span class="field-label">Visa Type:</span> {{orUnknown .VisaType}}</p>
            <p><span class="field-label">Case Type:</span> {{if .CaseType}}{{.CaseType}}{{else}}unknown{{end}}</p>
            <p><span class="field-label">Decision Outcome:</span> {{if .DecisionOutcome}}{{.DecisionOutcome}}{{else}}unknown{{end}}</p>
            <p><span class="field-label">Decision Date:</span> {{orUnknown .DecisionDate}}</p>
            <p><span class="field-label">Service Center:</span> {{orUnknown .ServiceCenter}}</p>
            <p><span class="field-label">Beneficiary Role:</span> {{orUnknown .BeneficiaryRole}}</p>

            {{if .Issues}}
                <h3>Key Issues</h3>
                <ul>
                {{range .Issues}}<li>{{.}}</li>{{end}}
                </ul>
            {{end}}

            {{if .CriteriaNotMet}}
                <h3>Criteria Not Met</h3>
                <ul>
                {{range .CriteriaNotMet}}<li>{{.}}</li>{{end}}
                </ul>
            {{end}}

            {{if .RiskFactors}}
                <h3>Risk Factors</h3>
                <ul>
                {{range .RiskFactors}}<li>{{.}}</li>{{end}}
                </ul>
            {{end}}

            {{if .Notes}}
                <h3>Notes</h3>
                <p>{{.Notes}}</p>
            {{end}}
        </div>
    {{end}}

    {{if .JSONText}}
        <div class="card">
            <h2>Full JSON</h2>
            <pre>{{.JSONText}}</pre>
        </div>
    {{end}}
</body>
</html>
`))

// renderPage writes the analyzer page.
func (s *Server) renderPage(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("template render failed", "error", err)
	}
}
