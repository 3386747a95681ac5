// Package validation обертка над go-playground/validator с понятными сообщениями об ошибках
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/barbershop-booking/pkg/types"
)

// FieldError ошибка валидации одного поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors список ошибок валидации
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	messages := make([]string, 0, len(e))
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// Fields имена полей с ошибками
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for _, err := range e {
		fields = append(fields, err.Field)
	}
	return fields
}

// Validator валидатор структур по тегам validate
type Validator struct {
	validate *validator.Validate
}

// New создает валидатор. types.TimeString валидируется как строка "HH:MM",
// незаданное время считается пустым значением.
func New() *Validator {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		ts, ok := field.Interface().(types.TimeString)
		if !ok || ts.IsZero() {
			return ""
		}
		return ts.String()
	}, types.TimeString{})

	return &Validator{validate: v}
}

// Struct валидирует структуру; ошибки тегов возвращаются как Errors
func (v *Validator) Struct(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}
	return nil
}

func translate(errs validator.ValidationErrors) Errors {
	out := make(Errors, 0, len(errs))

	for _, err := range errs {
		field := err.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}

		message := err.Error()
		switch err.Tag() {
		case "required", "required_if":
			message = "is required"
		case "min":
			message = fmt.Sprintf("must be at least %s", err.Param())
		case "max":
			message = fmt.Sprintf("must be at most %s", err.Param())
		case "email":
			message = "must be a valid email"
		case "oneof":
			message = fmt.Sprintf("must be one of: %s", err.Param())
		case "e164":
			message = "must be in E.164 format"
		}

		out = append(out, FieldError{Field: field, Message: message})
	}

	return out
}
