package form

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderOrderFollowsCatalog(t *testing.T) {
	catalog := signupCatalog() // bio first, color second
	normalized := NormalizedSubmission{"color": "1", "bio": "<p>Hi</p>"}

	report := Render(normalized, catalog)
	if len(report) != 2 {
		t.Fatalf("len(report) = %d; want 2", len(report))
	}
	if report[0].Label != "Biography" || report[1].Label != "Favourite colour" {
		t.Errorf("report order = [%s, %s]; want catalog order", report[0].Label, report[1].Label)
	}
}

func TestRenderSkipsAbsentFields(t *testing.T) {
	report := Render(NormalizedSubmission{"color": "0"}, signupCatalog())
	if len(report) != 1 {
		t.Fatalf("len(report) = %d; want 1", len(report))
	}
	assert.Equal(t, "Favourite colour", report[0].Label)
}

func TestFieldTypeFormat(t *testing.T) {
	options := []string{"Red", "Green", "Blue"}

	tests := []struct {
		name    string
		typ     FieldType
		val     interface{}
		options []string
		want    string
	}{
		{"select resolves index", FieldSelect, "1", options, "Green"},
		{"select numeric index", FieldSelect, float64(2), options, "Blue"},
		{"select out of range", FieldSelect, "5", options, ""},
		{"select negative index", FieldSelect, "-1", options, ""},
		{"select unparseable", FieldSelect, "blue", options, ""},
		{"multiselect preserves submission order", FieldMultiselect, []interface{}{"2", "0"}, []string{"A", "B", "C"}, "C, A"},
		{"multiselect partial out of range", FieldMultiselect, []interface{}{"0", "9"}, []string{"A", "B"}, "A, "},
		{"multiselect single value", FieldMultiselect, "1", options, "Green"},
		{"checkbox zero", FieldCheckbox, float64(0), nil, "No"},
		{"checkbox zero string", FieldCheckbox, "0", nil, "No"},
		{"checkbox one", FieldCheckbox, float64(1), nil, "Yes"},
		{"checkbox on", FieldCheckbox, "on", nil, "Yes"},
		{"checkbox empty", FieldCheckbox, "", nil, "No"},
		{"checkbox nil", FieldCheckbox, nil, nil, "No"},
		{"text verbatim", FieldText, "Ada", nil, "Ada"},
		{"text number stringified", FieldText, float64(42), nil, "42"},
		{"editor verbatim", FieldEditor, "<p>Hi</p>", nil, "<p>Hi</p>"},
		{"date verbatim", FieldDate, "2022-03-01", nil, "2022-03-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.Format(tt.val, tt.options); got != tt.want {
				t.Errorf("Format() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestReportHTML(t *testing.T) {
	report := Report{
		{Label: "Name", Value: "Ada"},
		{Label: "Subscribe", Value: "Yes"},
	}
	html := report.HTML()

	assert.Contains(t, html, "<p><strong>Name</strong>: Ada</p>")
	assert.Contains(t, html, "<p><strong>Subscribe</strong>: Yes</p>")
	if !(strings.Index(html, "Name") < strings.Index(html, "Subscribe")) {
		t.Error("report HTML out of order")
	}
}

func TestReportHTMLEscapes(t *testing.T) {
	report := Report{{Label: "Bio", Value: "<script>alert(1)</script>"}}
	html := report.HTML()

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestParseFieldType(t *testing.T) {
	assert.Equal(t, FieldSelect, ParseFieldType("select"))
	assert.Equal(t, FieldText, ParseFieldType("somethingnew")) // unknown degrades to text
}

func TestViewerFields(t *testing.T) {
	catalog := []FieldDefinition{
		{ShortName: "a", Visibility: VisibilityAll},
		{ShortName: "b", Visibility: VisibilityTeachers},
		{ShortName: "c", Visibility: VisibilityHidden},
		{ShortName: "d", Visibility: VisibilityAll},
	}
	fields := ViewerFields(catalog)
	if len(fields) != 2 {
		t.Fatalf("len(fields) = %d; want 2", len(fields))
	}
	assert.Equal(t, "a", fields[0].ShortName)
	assert.Equal(t, "d", fields[1].ShortName)
}
