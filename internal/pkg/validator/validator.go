package validator

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pratik-mahalle/hireloop/internal/domain/candidate"
	"github.com/pratik-mahalle/hireloop/internal/domain/job"
	"github.com/pratik-mahalle/hireloop/internal/domain/team"
)

// Validator wraps go-playground validator with the hireloop field tags
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// Domain tags. Each accepts the empty string so it composes with omitempty
// and required.
var domainTags = map[string]func(string) bool{
	"team_role":       func(s string) bool { return team.Role(s).Valid() },
	"job_status":      func(s string) bool { return job.Status(s).Valid() },
	"candidate_stage": func(s string) bool { return candidate.Stage(s).Valid() },
}

// New creates a new validator instance
func New() *Validator {
	v := validator.New()

	// json tag names in error fields
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, ok := range domainTags {
		ok := ok
		// registration only fails on an empty tag
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || ok(s)
		})
	}

	return &Validator{
		validate: v,
	}
}

// Validate validates a struct. A non-struct argument is reported as a
// single error instead of panicking.
func (v *Validator) Validate(i interface{}) []ValidationError {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return []ValidationError{{Tag: "struct", Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Value:   fmt.Sprintf("%v", fe.Value()),
			Message: msgForTag(fe),
		})
	}
	return out
}

// ValidateVar validates a single variable
func (v *Validator) ValidateVar(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

func msgForTag(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "team_role":
		return fmt.Sprintf("%s must be one of [%s %s %s %s]", field, team.RoleAdmin, team.RoleRecruiter, team.RoleInterviewer, team.RoleViewer)
	case "job_status":
		return fmt.Sprintf("%s must be one of [%s %s %s]", field, job.StatusDraft, job.StatusOpen, job.StatusClosed)
	case "candidate_stage":
		return fmt.Sprintf("%s is not a known pipeline stage", field)
	default:
		return fmt.Sprintf("%s failed validation for tag: %s", field, fe.Tag())
	}
}
