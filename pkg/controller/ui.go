package controller

import "github.com/goliatone/go-formflow/pkg/model"

// FieldSet exposes the live values of a form's inputs.
type FieldSet interface {
	// Fields returns a fresh snapshot in document order.
	Fields() []model.Field
	SetValue(name, value string)
}

// SubmitControl is the form's submit button.
type SubmitControl interface {
	Label() string
	SetLabel(label string)
	SetEnabled(enabled bool)
}

// ErrorSlots is the inline error text rendered next to each field.
type ErrorSlots interface {
	SetError(field, message string)
	ClearError(field string)
}

// Notifier is the success banner shown after a completed submission.
type Notifier interface {
	Show(message string)
	Hide()
}

// Cue is a transient visual error marker on an input (a red border).
type Cue interface {
	Mark(field string)
	Clear(field string)
}

// UI bundles the handles a controller drives. Fields and Submit are always
// required, Errors is required for contact forms, Notice and Cue are optional.
type UI struct {
	Fields FieldSet
	Submit SubmitControl
	Errors ErrorSlots
	Notice Notifier
	Cue    Cue
}

// ValidityListener is told when a field's validity flips.
type ValidityListener func(field string, valid bool)

// StateListener is told about every state transition.
type StateListener func(from, to State)
