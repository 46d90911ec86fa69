package core

// validation.go checks submissions against FieldSpecs before insertion.
//
// Validation happens at two levels:
//  1. Field validation: one value against its spec (used per form step)
//  2. Submission validation: all eight fields, collecting every problem
//
// Rules are expressed as go-playground/validator tags generated from the
// spec, so the form and the service can never disagree about a rule.

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxIdempotencyKeyLen bounds the Idempotency-Key header.
const MaxIdempotencyKeyLen = 128

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError describes why one field failed validation.
type FieldError struct {
	Field   Field  // Field key
	Value   string // The rejected value
	Message string // Human-readable error message
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError is returned when one or more fields are missing or malformed.
// It is recoverable by the user correcting input and is never a system fault.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Error()
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}

// Has reports whether the error names the given field.
func (e *ValidationError) Has(f Field) bool {
	for _, fe := range e.Errors {
		if fe.Field == f {
			return true
		}
	}
	return false
}

// Messages returns the per-field messages keyed by field.
func (e *ValidationError) Messages() map[Field]string {
	out := make(map[Field]string, len(e.Errors))
	for _, fe := range e.Errors {
		out[fe.Field] = fe.Message
	}
	return out
}

// WireMessages returns the per-field messages keyed by JSON wire name.
func (e *ValidationError) WireMessages() map[string]string {
	out := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		name := string(fe.Field)
		if spec, ok := Spec(fe.Field); ok {
			name = spec.Wire
		}
		out[name] = fe.Message
	}
	return out
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// rule returns the validator tag for a spec.
func (s FieldSpec) rule() string {
	switch s.Type {
	case FieldEnum:
		quoted := make([]string, len(s.Options))
		for i, o := range s.Options {
			quoted[i] = "'" + o.Value + "'"
		}
		return "required,oneof=" + strings.Join(quoted, " ")
	default:
		tag := "required"
		if s.MinLen > 0 {
			tag += ",min=" + strconv.Itoa(s.MinLen)
		}
		if s.MaxLen > 0 {
			tag += ",max=" + strconv.Itoa(s.MaxLen)
		}
		return tag
	}
}

// unsupportedRuneMsg is shown for characters above MaxStoredRune.
const unsupportedRuneMsg = "Please remove emoji and other unsupported characters"

func hasUnsupportedRune(s string) bool {
	for _, r := range s {
		if r > MaxStoredRune {
			return true
		}
	}
	return false
}

// ValidateField checks a single value against its field's rule.
// Surrounding whitespace is ignored. Returns nil if the value is valid.
func ValidateField(f Field, value string) *FieldError {
	spec, ok := Spec(f)
	if !ok {
		return &FieldError{Field: f, Value: value, Message: "unknown field"}
	}

	value = strings.TrimSpace(value)
	err := validate.Var(value, spec.rule())
	if err == nil {
		if spec.Type != FieldEnum && hasUnsupportedRune(value) {
			return &FieldError{Field: f, Value: value, Message: unsupportedRuneMsg}
		}
		return nil
	}

	msg := spec.InvalidMsg
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "required":
			msg = spec.RequiredMsg
		case "max":
			msg = spec.TooLongMsg
		}
	}
	return &FieldError{Field: f, Value: value, Message: msg}
}

// ValidateFields checks a subset of fields, in the order given.
// Returns nil when all of them are valid.
func ValidateFields(sub NewSubmission, fields ...Field) *ValidationError {
	var errs []FieldError
	for _, f := range fields {
		if fe := ValidateField(f, sub.Get(f)); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}

// ValidateSubmission checks all eight fields and the optional idempotency key.
func ValidateSubmission(sub NewSubmission) *ValidationError {
	fields := make([]Field, len(FieldSpecs))
	for i, spec := range FieldSpecs {
		fields[i] = spec.Field
	}
	verr := ValidateFields(sub, fields...)

	if len(sub.IdempotencyKey) > MaxIdempotencyKeyLen {
		if verr == nil {
			verr = &ValidationError{}
		}
		verr.Errors = append(verr.Errors, FieldError{
			Field:   "idempotencyKey",
			Message: fmt.Sprintf("must be at most %d characters", MaxIdempotencyKeyLen),
		})
	}
	return verr
}
