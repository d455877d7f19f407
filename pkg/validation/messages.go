package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Messages is the user-facing text shown for each error code.
type Messages struct {
	Required        string `yaml:"required" json:"required"`
	InvalidEmail    string `yaml:"invalidEmail" json:"invalidEmail"`
	InvalidPhone    string `yaml:"invalidPhone" json:"invalidPhone"`
	NameTooShort    string `yaml:"nameTooShort" json:"nameTooShort"`
	MessageTooShort string `yaml:"messageTooShort" json:"messageTooShort"`
}

// Hebrew is the catalog the landing page ships with.
var Hebrew = Messages{
	Required:        "שדה זה הוא חובה",
	InvalidEmail:    "כתובת האימייל אינה תקינה",
	InvalidPhone:    "מספר הטלפון אינו תקין",
	NameTooShort:    "השם חייב להכיל לפחות 2 תווים",
	MessageTooShort: "ההודעה חייבת להכיל לפחות 10 תווים",
}

// English is provided for the CLI and tests.
var English = Messages{
	Required:        "This field is required",
	InvalidEmail:    "Please enter a valid email address",
	InvalidPhone:    "Please enter a valid phone number",
	NameTooShort:    "Name must be at least 2 characters",
	MessageTooShort: "Message must be at least 10 characters",
}

// Default is used when no catalog is configured.
var Default = Hebrew

// Catalog returns the built-in catalog for a locale tag ("he", "en", "en-US").
func Catalog(locale string) (Messages, error) {
	tag := strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	switch tag {
	case "", "he", "iw":
		return Hebrew, nil
	case "en":
		return English, nil
	default:
		return Messages{}, fmt.Errorf("validation: unknown locale %q", locale)
	}
}

// For returns the message for code. Blank entries fall back to Default so a
// partially configured catalog never produces an empty error text.
func (m *Messages) For(code model.ErrorCode) string {
	if m == nil {
		return Default.lookup(code)
	}
	if msg := m.lookup(code); msg != "" {
		return msg
	}
	return Default.lookup(code)
}

// Merge returns m with blank entries filled from base.
func (m Messages) Merge(base Messages) Messages {
	if m.Required == "" {
		m.Required = base.Required
	}
	if m.InvalidEmail == "" {
		m.InvalidEmail = base.InvalidEmail
	}
	if m.InvalidPhone == "" {
		m.InvalidPhone = base.InvalidPhone
	}
	if m.NameTooShort == "" {
		m.NameTooShort = base.NameTooShort
	}
	if m.MessageTooShort == "" {
		m.MessageTooShort = base.MessageTooShort
	}
	return m
}

func (m Messages) lookup(code model.ErrorCode) string {
	switch code {
	case model.CodeRequired:
		return m.Required
	case model.CodeInvalidEmail:
		return m.InvalidEmail
	case model.CodeInvalidPhone:
		return m.InvalidPhone
	case model.CodeNameTooShort:
		return m.NameTooShort
	case model.CodeMessageTooShort:
		return m.MessageTooShort
	default:
		return ""
	}
}
