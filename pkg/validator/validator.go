package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/agendaclinic/scheduling-api/pkg/errors"
)

// Validator checks request structs and reports every violated field at once,
// so callers can surface all problems in a single response.
type Validator interface {
	Validate(obj interface{}) *apperrors.AppError
}

type requestValidator struct {
	v *validator.Validate
}

func New() Validator {
	v := validator.New()
	// Report fields under their JSON names, matching the wire payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{v: v}
}

func (rv *requestValidator) Validate(obj interface{}) *apperrors.AppError {
	err := rv.v.Struct(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewPersistence(err)
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{
			Field:   fe.Field(),
			Message: ruleMessage(fe),
		})
	}
	return apperrors.NewValidation(fields)
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a valid identifier"
	case "datetime":
		if fe.Param() == "15:04" {
			return "must be a time in HH:MM format"
		}
		return "must be a date in YYYY-MM-DD format"
	case "gt":
		return "must be greater than " + fe.Param()
	case "email":
		return "must be a valid email"
	default:
		return "is invalid"
	}
}
