package schema

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks a document against its schema constraints. The returned
// error is a validator.ValidationErrors when constraints are violated.
func Validate(doc interface{}) error {
	return validate.Struct(doc)
}
