package models

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	e "github.com/datastax/sql-datatables/rest/errors"
)

var (
	inputValidator *validator.Validate
	trans          ut.Translator
)

func init() {
	inputValidator = validator.New()

	uni := ut.New(en.New(), en.New())
	trans, _ = uni.GetTranslator("en")

	_ = enTranslations.RegisterDefaultTranslations(inputValidator, trans)
}

// Validate checks the parts of the request the translator relies on, such as non negative offsets
func (r Request) Validate() error {
	if err := inputValidator.Struct(r); err != nil {
		return e.NewBadRequestError(e.TranslateValidatorError(err, trans).Error())
	}
	return nil
}
