package form

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/customform/core"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	// custom validation tags & texts
	postURLTag  = "posturl"
	postURLText = "only http and https URLs can receive submissions"
)

// InitValidators registers this package's validations on the shared validator.
func InitValidators(v *validator.Validate, t ut.Translator) {
	validate = v
	translator = t

	_ = v.RegisterValidation(postURLTag, postURLValidation)
	core.RegisterCustomTranslation(v, t, postURLTag, postURLText)
}

func (nf NewForm) Validate() error {
	return validate.Struct(nf)
}

func (uf UpdateForm) Validate() error {
	return validate.Struct(uf)
}

// Custom Validators

// postURLValidation restricts submission targets to http(s) endpoints.
func postURLValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return str == "" || strings.HasPrefix(str, "http://") || strings.HasPrefix(str, "https://")
	}
	return false
}
