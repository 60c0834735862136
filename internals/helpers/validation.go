package helper

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validator mengembalikan instance validator bersama.
func Validator() *validator.Validate { return validate }

// ValidateStruct menjalankan tag `validate` pada struct DTO.
func ValidateStruct(v any) error {
	return validate.Struct(v)
}
