package model

import "strings"

// FieldKind is the input kind a field is rendered as.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindEmail    FieldKind = "email"
	FieldKindTel      FieldKind = "tel"
	FieldKindLongText FieldKind = "longtext"
)

// Valid reports whether k is one of the known kinds.
func (k FieldKind) Valid() bool {
	switch k {
	case FieldKindText, FieldKindEmail, FieldKindTel, FieldKindLongText:
		return true
	default:
		return false
	}
}

// ParseFieldKind maps HTML input types and a few aliases onto a FieldKind.
// Unknown values fall back to text.
func ParseFieldKind(raw string) FieldKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "email":
		return FieldKindEmail
	case "tel", "phone":
		return FieldKindTel
	case "longtext", "textarea", "multiline":
		return FieldKindLongText
	default:
		return FieldKindText
	}
}

// ErrorCode identifies which validation rule rejected a field.
type ErrorCode string

const (
	CodeNone            ErrorCode = ""
	CodeRequired        ErrorCode = "required"
	CodeInvalidEmail    ErrorCode = "invalid_email"
	CodeInvalidPhone    ErrorCode = "invalid_phone"
	CodeNameTooShort    ErrorCode = "name_too_short"
	CodeMessageTooShort ErrorCode = "message_too_short"
)

// Field is one input or textarea being validated.
type Field struct {
	Name        string    `json:"name" yaml:"name"`
	Value       string    `json:"value,omitempty" yaml:"value,omitempty"`
	Kind        FieldKind `json:"kind" yaml:"kind"`
	Required    bool      `json:"required" yaml:"required"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// ValidationResult is the outcome of checking one field. Message is empty
// when Valid is true and non-empty otherwise.
type ValidationResult struct {
	FieldName string    `json:"field"`
	Valid     bool      `json:"valid"`
	Code      ErrorCode `json:"code,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// FormKind selects the submission flow a controller runs.
type FormKind string

const (
	FormKindContact    FormKind = "contact"
	FormKindNewsletter FormKind = "newsletter"
)

// FormModel describes a form: its fields and where it would be submitted.
type FormModel struct {
	ID          string   `json:"id"`
	Kind        FormKind `json:"kind"`
	Endpoint    string   `json:"endpoint,omitempty"`
	Method      string   `json:"method,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	SubmitLabel string   `json:"submitLabel,omitempty"`
	Fields      []Field  `json:"fields"`
}

// Field returns the field with the given name.
func (f FormModel) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FirstOfKind returns the first field of the given kind.
func (f FormModel) FirstOfKind(kind FieldKind) (Field, bool) {
	for _, field := range f.Fields {
		if field.Kind == kind {
			return field, true
		}
	}
	return Field{}, false
}

// Clone returns a deep copy so callers can mutate values freely.
func (f FormModel) Clone() FormModel {
	out := f
	if f.Fields != nil {
		out.Fields = append([]Field(nil), f.Fields...)
	}
	return out
}
