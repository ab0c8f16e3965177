package form

import (
	"fmt"
	"html"
	"strings"
)

// Render formats a normalized submission into a label/value report.
//
// Output order is catalog order, independent of the payload's iteration
// order. Catalog fields absent from the payload are skipped rather than
// rendered empty; conditionally-hidden fields would otherwise produce
// noisy reports.
func Render(normalized NormalizedSubmission, catalog []FieldDefinition) Report {
	report := make(Report, 0, len(catalog))
	for _, fd := range catalog {
		val, ok := normalized[fd.ShortName]
		if !ok {
			continue
		}
		report = append(report, ReportEntry{
			Label: fd.Name,
			Value: fd.Type.Format(val, fd.Options),
		})
	}
	return report
}

// HTML renders the report as the notification email body:
// one <p><strong>label</strong>: value</p> block per entry.
func (r Report) HTML() string {
	var b strings.Builder
	for _, entry := range r {
		_, _ = fmt.Fprintf(&b, "<p><strong>%s</strong>: %s</p>\n",
			html.EscapeString(entry.Label), html.EscapeString(entry.Value))
	}
	return b.String()
}
