package form

import (
	"sort"
	"strings"
)

const (
	fieldKeyPrefix  = "customfield_"
	editorKeySuffix = "_editor"
	editorTextKey   = "text"
)

// Normalize flattens a raw form post into a short-name keyed payload.
//
// Keys are matched against the expected submission keys derived from the
// catalog (each field's FormKey, plus the composite EditorFormKey for
// rich-text fields). Only values under an editor-suffixed key get their
// {text, format} composite reduced to the text component; any other
// value, composite or not, is carried whole. Keys that match nothing in
// the catalog are passed through with the submission prefix/suffix
// stripped, so catalog drift between render time and submit time loses
// no data.
//
// Raw keys are processed in sorted order, which makes the documented
// last-write-wins on colliding normalized keys deterministic: for a
// field submitted both as "customfield_bio" and "customfield_bio_editor"
// the editor value wins. Normalize is a pure function of its inputs.
func Normalize(raw RawSubmission, catalog []FieldDefinition) NormalizedSubmission {
	expected := make(map[string]string, 2*len(catalog)) // submission key -> short name
	for _, fd := range catalog {
		expected[fd.FormKey()] = fd.ShortName
		if fd.Type == FieldEditor {
			expected[fd.EditorFormKey()] = fd.ShortName
		}
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	normalized := make(NormalizedSubmission, len(raw))
	for _, key := range keys {
		val := raw[key]
		if strings.HasSuffix(key, editorKeySuffix) {
			val = flatten(val)
		}
		short, ok := expected[key]
		if !ok {
			short = strings.TrimSuffix(strings.TrimPrefix(key, fieldKeyPrefix), editorKeySuffix)
		}
		normalized[short] = val
	}
	return normalized
}

// flatten reduces an editor {text, format} composite to its text component.
// Anything else passes through untouched.
func flatten(val interface{}) interface{} {
	if composite, ok := val.(map[string]interface{}); ok {
		if text, ok := composite[editorTextKey]; ok {
			return text
		}
	}
	return val
}
