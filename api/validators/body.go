package validators

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/simplishare/simplishare-server/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Violation is one failed constraint on one field. Validation is exhaustive:
// the response carries every violation, not just the first.
type Violation struct {
	Field     string `json:"field"`
	Kind      string `json:"kind"`
	ErrorCode int    `json:"errorCode"`
	Message   string `json:"message"`
}

type rule struct {
	appCode  pkgerrors.AppCode
	template string
}

// rulesByTag maps a constraint kind to its stable client code and message
// template. {param} is replaced with the constraint parameter.
var rulesByTag = map[string]rule{
	"required": {pkgerrors.AppInvalidFieldFormat, "is required"},
	"email":    {pkgerrors.AppInvalidEmailFormat, "must be a valid email address"},
	"min":      {pkgerrors.AppInvalidFieldFormat, "must be at least {param} characters"},
	"max":      {pkgerrors.AppInvalidFieldFormat, "must be at most {param} characters"},
	"len":      {pkgerrors.AppInvalidFieldFormat, "must be exactly {param} characters"},
	"alphanum": {pkgerrors.AppInvalidUsername, "may only contain letters and digits"},
	"numeric":  {pkgerrors.AppInvalidFieldFormat, "must be numeric"},
	"gte":      {pkgerrors.AppInvalidFieldFormat, "must be at least {param}"},
	"lte":      {pkgerrors.AppInvalidFieldFormat, "must be at most {param}"},
	"oneof":    {pkgerrors.AppInvalidFieldFormat, "must be one of: {param}"},
	"uuid":     {pkgerrors.AppInvalidFieldFormat, "must be a valid identifier"},
}

var fallbackRule = rule{pkgerrors.AppInvalidFieldFormat, "is invalid"}

// DecodeJSONBody decodes the request body into dest and validates it against
// the struct's constraint tags.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").
			WithDetails(map[string]any{"error": err.Error()})
	}
	return CheckStruct(dest)
}

// CheckStruct validates an already-populated struct, collecting every
// violation before reporting.
func CheckStruct(dest any) error {
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		// The evaluation itself failed, not the input.
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "validation failed").
			WithAppCode(pkgerrors.AppServerError)
	}

	violations := make([]Violation, 0, len(errs))
	for _, fieldErr := range errs {
		violations = append(violations, violationFor(fieldErr))
	}

	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithAppCode(pkgerrors.AppCode(violations[0].ErrorCode)).
		WithDetails(violations)
}

func violationFor(fe validator.FieldError) Violation {
	r, ok := rulesByTag[fe.Tag()]
	if !ok {
		r = fallbackRule
	}

	code := r.appCode
	if fe.Field() == "password" {
		code = pkgerrors.AppPasswordTooShort
	}

	msg := strings.ReplaceAll(r.template, "{param}", fe.Param())
	return Violation{
		Field:     fe.Field(),
		Kind:      fe.Tag(),
		ErrorCode: int(code),
		Message:   fmt.Sprintf("%s %s", fe.Field(), msg),
	}
}
