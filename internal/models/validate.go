package models

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports errors under the json names clients actually send, so
// ReferenceIDs comes back as "referenceIds", not "referenceIDs".
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// ValidateStruct runs tag validation and returns a field -> message map, empty
// when the struct is valid. Field keys use the json names clients sent.
func ValidateStruct(s any) map[string]string {
	errs := map[string]string{}

	err := validate.Struct(s)
	if err == nil {
		return errs
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_"] = err.Error()
		return errs
	}

	for _, fieldErr := range validationErrors {
		field := jsonFieldName(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			errs[field] = "Este campo es obligatorio"
		case "email":
			errs[field] = "Correo electrónico inválido"
		case "min":
			errs[field] = "Debe tener al menos " + fieldErr.Param() + " caracteres"
		case "max":
			errs[field] = "Supera el máximo permitido (" + fieldErr.Param() + ")"
		case "uuid":
			errs[field] = "Identificador inválido"
		case "oneof":
			errs[field] = "Valor no permitido"
		default:
			errs[field] = "Valor inválido"
		}
	}

	return errs
}

func jsonFieldName(structField string) string {
	if structField == "" {
		return structField
	}
	return strings.ToLower(structField[:1]) + structField[1:]
}
