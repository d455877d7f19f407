package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-formflow/pkg/model"
)

const (
	// MinNameLength is the shortest accepted "name" value.
	MinNameLength = 2
	// MinMessageLength is the shortest accepted message body.
	MinMessageLength = 10
)

// whitespace is the character-class body for every Unicode space separator,
// line terminator and BOM. RE2's \s is ASCII only.
const whitespace = `\s\v\x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var (
	emailPattern = regexp.MustCompile(`^[^` + whitespace + `@]+@[^` + whitespace + `@]+\.[^` + whitespace + `@]+$`)
	phonePattern = regexp.MustCompile(`^[\d` + whitespace + `\-\+\(\)]{8,}$`)
)

// IsSpace reports whether r belongs to the whitespace class above.
func IsSpace(r rune) bool {
	switch r {
	case '\ufeff':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}

// Trim removes leading and trailing whitespace as IsSpace defines it.
func Trim(value string) string {
	return strings.TrimFunc(value, IsSpace)
}

// IsEmail reports whether value looks like local@domain.tld.
func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// IsPhone reports whether value has at least eight characters, all drawn
// from digits, whitespace and "-+()".
func IsPhone(value string) bool {
	return phonePattern.MatchString(value)
}

// ValidateField checks a single field. A nil catalog falls back to Default.
func ValidateField(field model.Field, messages *Messages) model.ValidationResult {
	code := check(field)
	if code == model.CodeNone {
		return model.ValidationResult{FieldName: field.Name, Valid: true}
	}
	return model.ValidationResult{
		FieldName: field.Name,
		Valid:     false,
		Code:      code,
		Message:   messages.For(code),
	}
}

func check(field model.Field) model.ErrorCode {
	value := Trim(field.Value)
	if value == "" {
		if field.Required {
			return model.CodeRequired
		}
		return model.CodeNone
	}

	switch {
	case field.Kind == model.FieldKindEmail && !IsEmail(value):
		return model.CodeInvalidEmail
	case field.Kind == model.FieldKindTel && !IsPhone(value):
		return model.CodeInvalidPhone
	case field.Name == "name" && utf8.RuneCountInString(value) < MinNameLength:
		return model.CodeNameTooShort
	case isMessageField(field) && utf8.RuneCountInString(value) < MinMessageLength:
		return model.CodeMessageTooShort
	}
	return model.CodeNone
}

func isMessageField(field model.Field) bool {
	return field.Name == "message" || field.Kind == model.FieldKindLongText
}

// Report aggregates per-field results for a whole form.
type Report struct {
	Valid   bool
	Results []model.ValidationResult
}

// Invalid returns only the failing results, in field order.
func (r Report) Invalid() []model.ValidationResult {
	var out []model.ValidationResult
	for _, res := range r.Results {
		if !res.Valid {
			out = append(out, res)
		}
	}
	return out
}

// Errors maps field names to their message, omitting valid fields.
func (r Report) Errors() map[string]string {
	out := make(map[string]string)
	for _, res := range r.Results {
		if !res.Valid {
			out[res.FieldName] = res.Message
		}
	}
	return out
}

// ValidateForm validates every field, with no short-circuit, so all errors
// can be surfaced at once.
func ValidateForm(fields []model.Field, messages *Messages) Report {
	report := Report{Valid: true, Results: make([]model.ValidationResult, 0, len(fields))}
	for _, field := range fields {
		res := ValidateField(field, messages)
		report.Results = append(report.Results, res)
		report.Valid = report.Valid && res.Valid
	}
	return report
}
