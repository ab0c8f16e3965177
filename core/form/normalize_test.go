package form

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signupCatalog() []FieldDefinition {
	return []FieldDefinition{
		{ID: 1, ShortName: "bio", Name: "Biography", Type: FieldEditor, CategoryID: 1, Visibility: VisibilityAll, SortOrder: 0},
		{ID: 2, ShortName: "color", Name: "Favourite colour", Type: FieldSelect, CategoryID: 1, Options: []string{"Red", "Green", "Blue"}, Visibility: VisibilityAll, SortOrder: 1},
	}
}

func TestNormalize(t *testing.T) {
	catalog := signupCatalog()

	tests := []struct {
		name string
		raw  RawSubmission
		want NormalizedSubmission
	}{
		{
			name: "scalar and editor composite",
			raw: RawSubmission{
				"customfield_color":      "2",
				"customfield_bio_editor": map[string]interface{}{"text": "<p>Hi</p>", "format": float64(1)},
			},
			want: NormalizedSubmission{"color": "2", "bio": "<p>Hi</p>"},
		},
		{
			name: "unknown keys pass through with prefix stripped",
			raw: RawSubmission{
				"customfield_legacy": "kept",
				"cmid":               float64(5),
			},
			want: NormalizedSubmission{"legacy": "kept", "cmid": float64(5)},
		},
		{
			name: "colliding keys resolve deterministically, editor wins",
			raw: RawSubmission{
				"customfield_bio":        "plain",
				"customfield_bio_editor": map[string]interface{}{"text": "rich", "format": float64(1)},
			},
			want: NormalizedSubmission{"bio": "rich"},
		},
		{
			name: "multiselect array untouched",
			raw:  RawSubmission{"customfield_color": []interface{}{"2", "0"}},
			want: NormalizedSubmission{"color": []interface{}{"2", "0"}},
		},
		{
			name: "empty submission",
			raw:  RawSubmission{},
			want: NormalizedSubmission{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, catalog)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeIsPure(t *testing.T) {
	catalog := signupCatalog()
	raw := RawSubmission{
		"customfield_color":      "2",
		"customfield_bio_editor": map[string]interface{}{"text": "<p>Hi</p>", "format": float64(1)},
	}

	first := Normalize(raw, catalog)
	second := Normalize(raw, catalog)
	assert.Equal(t, first, second)

	// the raw submission is never mutated
	composite := raw["customfield_bio_editor"].(map[string]interface{})
	assert.Equal(t, "<p>Hi</p>", composite["text"])
	assert.Equal(t, float64(1), composite["format"])
}

func TestNormalizeNonEditorCompositeUntouched(t *testing.T) {
	// only values under an editor-suffixed key get their composite
	// reduced; any other map value is carried whole, even when it
	// happens to contain a text member
	catalog := []FieldDefinition{
		{ShortName: "meta", Name: "Meta", Type: FieldText, CategoryID: 1},
	}
	raw := RawSubmission{
		"customfield_meta": map[string]interface{}{"text": "x", "other": "y"},
		"metadata":         map[string]interface{}{"text": "x", "other": "y"},
		"customfield_fmt":  map[string]interface{}{"format": float64(1)},
	}

	got := Normalize(raw, catalog)
	assert.Equal(t, raw["customfield_meta"], got["meta"])
	assert.Equal(t, raw["metadata"], got["metadata"])
	assert.Equal(t, raw["customfield_fmt"], got["fmt"])
}
