package form

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	// errors
	ErrNotFound         = errors.New("form not found")
	ErrCategoryNotFound = errors.New("field category not found")
)

// FieldType is the closed set of custom field kinds a category can hold.
// Formatting is resolved per variant in Format; there is no catch-all
// runtime branch for unknown kinds, storage maps those to FieldText.
type FieldType string

const (
	FieldText        FieldType = "text"
	FieldTextarea    FieldType = "textarea"
	FieldSelect      FieldType = "select"
	FieldMultiselect FieldType = "multiselect"
	FieldCheckbox    FieldType = "checkbox"
	FieldEditor      FieldType = "editor"
	FieldDate        FieldType = "date"
)

var AllFieldTypes = []FieldType{
	FieldText, FieldTextarea, FieldSelect, FieldMultiselect, FieldCheckbox, FieldEditor, FieldDate,
}

// ParseFieldType maps a stored type string to its variant.
// Unknown strings degrade to FieldText so the closed switch in Format stays total.
func ParseFieldType(s string) FieldType {
	for _, t := range AllFieldTypes {
		if s == string(t) {
			return t
		}
	}
	return FieldText
}

// Format resolves a normalized value into its human-readable display string.
func (t FieldType) Format(val interface{}, options []string) string {
	switch t {
	case FieldSelect:
		return optionLabel(val, options)
	case FieldMultiselect:
		return joinOptionLabels(val, options)
	case FieldCheckbox:
		return yesNo(val)
	case FieldText, FieldTextarea, FieldEditor, FieldDate:
		return stringify(val)
	}
	return stringify(val)
}

// Visibility controls who gets the field rendered in their form.
type Visibility int

const (
	VisibilityHidden Visibility = iota
	VisibilityTeachers
	VisibilityAll
)

type (
	Category struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	// FieldDefinition is an admin-defined custom field attached to a category.
	// Definitions are read-only for the duration of a submission.
	FieldDefinition struct {
		ID         int        `json:"id"`
		ShortName  string     `json:"shortname"` // unique within its category
		Name       string     `json:"name"`      // display label
		Type       FieldType  `json:"type"`
		CategoryID int        `json:"category_id"`
		Options    []string   `json:"options,omitempty"` // select/multiselect only, index-addressable
		Locked     bool       `json:"locked"`
		Visibility Visibility `json:"visibility"`
		SortOrder  int        `json:"sort_order"`
	}

	// Form is one course-module instance: which category it renders,
	// where submissions are forwarded, and the feedback shown after.
	Form struct {
		ID             int       `json:"id"`
		Course         string    `json:"course"`
		Name           string    `json:"name"`
		Intro          string    `json:"intro"`
		Feedback       string    `json:"feedback"`
		FeedbackFormat int       `json:"feedback_format"`
		URL            string    `json:"url"`
		CategoryID     int       `json:"category_id"`
		SendEmail      bool      `json:"send_email"`
		EmailTo        string    `json:"email_to"`
		CreatedAt      time.Time `json:"created_at"` // UTC
		UpdatedAt      time.Time `json:"updated_at"` // UTC
	}

	// RawSubmission is the form post as received: "customfield_"-prefixed
	// keys mapping to scalars, arrays or {text, format} editor composites.
	RawSubmission map[string]interface{}

	// NormalizedSubmission is the flattened short-name keyed payload
	// derived from a RawSubmission against a field catalog.
	NormalizedSubmission map[string]interface{}

	ReportEntry struct {
		Label string `json:"label"`
		Value string `json:"value"`
	}

	// Report is the human-readable rendering of a submission, in catalog order.
	Report []ReportEntry

	// DeliveryOutcome flags which delivery attempts were issued.
	// These are best-effort markers, not acknowledgments: Posted is true
	// once the POST was attempted regardless of the remote response.
	DeliveryOutcome struct {
		Posted  bool `json:"posted"`
		Emailed bool `json:"emailed"`
	}
)

// FormKey is the key this field submits under in a raw form post.
func (fd FieldDefinition) FormKey() string { return fieldKeyPrefix + fd.ShortName }

// EditorFormKey is the composite key rich-text editor fields submit under.
func (fd FieldDefinition) EditorFormKey() string { return fd.FormKey() + editorKeySuffix }

// Viewable reports whether the field is rendered in a submitter's form.
func (fd FieldDefinition) Viewable() bool { return fd.Visibility == VisibilityAll }

// ViewerFields filters a catalog down to the fields shown to a submitter,
// preserving catalog order.
func ViewerFields(catalog []FieldDefinition) []FieldDefinition {
	fields := make([]FieldDefinition, 0, len(catalog))
	for _, fd := range catalog {
		if fd.Viewable() {
			fields = append(fields, fd)
		}
	}
	return fields
}

// Values renders the payload per standard form-encoding conventions;
// array-valued fields become repeated keys.
func (n NormalizedSubmission) Values() url.Values {
	vals := make(url.Values, len(n))
	for key, val := range n {
		switch v := val.(type) {
		case []interface{}:
			for _, item := range v {
				vals.Add(key, stringify(item))
			}
		case []string:
			for _, item := range v {
				vals.Add(key, item)
			}
		default:
			vals.Add(key, stringify(val))
		}
	}
	return vals
}

// NewForm holds the admin-provided settings for a new instance.
type NewForm struct {
	Course         string `json:"course" validate:"required,notblank,max=255"`
	Name           string `json:"name" validate:"required,notblank,max=255"`
	Intro          string `json:"intro"`
	Feedback       string `json:"feedback" validate:"required"`
	FeedbackFormat int    `json:"feedback_format"`
	URL            string `json:"url" validate:"omitempty,url,posturl,max=255"`
	CategoryID     int    `json:"category_id" validate:"required"`
	SendEmail      bool   `json:"send_email"`
	EmailTo        string `json:"email_to" validate:"omitempty,email"`
}

// UpdateForm holds partial updates; zero values leave fields untouched,
// except SendEmail which is a pointer for explicit toggling.
type UpdateForm struct {
	Course         string `json:"course" validate:"omitempty,max=255"`
	Name           string `json:"name" validate:"omitempty,max=255"`
	Intro          string `json:"intro"`
	Feedback       string `json:"feedback"`
	FeedbackFormat int    `json:"feedback_format"`
	URL            string `json:"url" validate:"omitempty,url,posturl,max=255"`
	CategoryID     int    `json:"category_id"`
	SendEmail      *bool  `json:"send_email"`
	EmailTo        string `json:"email_to" validate:"omitempty,email"`
}

// display value helpers

func stringify(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64: // JSON numbers decode as float64
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []string:
		return strings.Join(v, ", ")
	case []interface{}:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, stringify(item))
		}
		return strings.Join(items, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// optionIndex parses a stored select value as a zero-based option index.
func optionIndex(val interface{}) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		idx, err := strconv.Atoi(strings.TrimSpace(v))
		return idx, err == nil
	}
	return 0, false
}

// optionLabel resolves an index against the catalog options.
// An out-of-range or unparseable index renders as an empty label; the
// catalog may have been edited between render time and submit time.
func optionLabel(val interface{}, options []string) string {
	idx, ok := optionIndex(val)
	if !ok || idx < 0 || idx >= len(options) {
		return ""
	}
	return options[idx]
}

// joinOptionLabels resolves a sequence of indices, preserving submission
// order (not catalog order), and comma-joins the labels.
func joinOptionLabels(val interface{}, options []string) string {
	var items []interface{}
	switch v := val.(type) {
	case []interface{}:
		items = v
	case []string:
		items = make([]interface{}, 0, len(v))
		for _, s := range v {
			items = append(items, s)
		}
	default:
		return optionLabel(val, options)
	}

	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, optionLabel(item, options))
	}
	return strings.Join(labels, ", ")
}

// yesNo formats a checkbox value: zero/empty is "No", anything truthy
// (1, "1", "on", true) is "Yes".
func yesNo(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return "No"
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case string:
		s := strings.TrimSpace(v)
		if s == "" || s == "0" {
			return "No"
		}
		return "Yes"
	case int:
		if v == 0 {
			return "No"
		}
		return "Yes"
	case int64:
		if v == 0 {
			return "No"
		}
		return "Yes"
	case float64:
		if v == 0 {
			return "No"
		}
		return "Yes"
	}
	return "Yes"
}
