package echoapi

import "github.com/trezcool/customform/core/form"

// FormView is what a viewer needs to render one form instance.
type FormView struct {
	Form   form.Form              `json:"form"`
	Fields []form.FieldDefinition `json:"fields"`
}
