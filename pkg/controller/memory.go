package controller

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-formflow/pkg/model"
)

// MemoryForm keeps a form's UI state in memory and implements every UI
// handle. Server-side rendering drives a controller against one per request,
// and tests use it in place of a document.
type MemoryForm struct {
	mu            sync.Mutex
	fields        []model.Field
	label         string
	enabled       bool
	errors        map[string]string
	notice        string
	noticeVisible bool
	cues          map[string]bool
}

var (
	_ FieldSet      = (*MemoryForm)(nil)
	_ SubmitControl = (*MemoryForm)(nil)
	_ ErrorSlots    = (*MemoryForm)(nil)
	_ Notifier      = (*MemoryForm)(nil)
	_ Cue           = (*MemoryForm)(nil)
)

// NewMemoryForm seeds the state from a form definition, including any values
// already present on its fields.
func NewMemoryForm(form model.FormModel) *MemoryForm {
	return &MemoryForm{
		fields:  append([]model.Field(nil), form.Fields...),
		label:   form.SubmitLabel,
		enabled: true,
		errors:  make(map[string]string),
		cues:    make(map[string]bool),
	}
}

// UI returns the handle bundle backed by m.
func (m *MemoryForm) UI() UI {
	return UI{Fields: m, Submit: m, Errors: m, Notice: m, Cue: m}
}

// Fill sets a value the way a user typing would.
func (m *MemoryForm) Fill(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.fields {
		if m.fields[i].Name == name {
			m.fields[i].Value = value
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Fields returns a snapshot of the fields and their values.
func (m *MemoryForm) Fields() []model.Field {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Field(nil), m.fields...)
}

// SetValue writes a field value; unknown names are ignored.
func (m *MemoryForm) SetValue(name, value string) {
	_ = m.Fill(name, value)
}

// Value returns the current value of a field.
func (m *MemoryForm) Value(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

func (m *MemoryForm) Label() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.label
}

func (m *MemoryForm) SetLabel(label string) {
	m.mu.Lock()
	m.label = label
	m.mu.Unlock()
}

func (m *MemoryForm) SetEnabled(enabled bool) {
	m.mu.Lock()
	m.enabled = enabled
	m.mu.Unlock()
}

// Enabled reports whether the submit control accepts clicks.
func (m *MemoryForm) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

func (m *MemoryForm) SetError(field, message string) {
	m.mu.Lock()
	m.errors[field] = message
	m.mu.Unlock()
}

func (m *MemoryForm) ClearError(field string) {
	m.mu.Lock()
	delete(m.errors, field)
	m.mu.Unlock()
}

// ErrorFor returns the text in a field's error slot.
func (m *MemoryForm) ErrorFor(field string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[field]
}

// Errors returns a copy of every non-empty error slot.
func (m *MemoryForm) Errors() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.errors))
	for k, v := range m.errors {
		out[k] = v
	}
	return out
}

func (m *MemoryForm) Show(message string) {
	m.mu.Lock()
	m.notice = message
	m.noticeVisible = true
	m.mu.Unlock()
}

func (m *MemoryForm) Hide() {
	m.mu.Lock()
	m.noticeVisible = false
	m.mu.Unlock()
}

// Notice returns the last notice text and whether it is visible.
func (m *MemoryForm) Notice() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notice, m.noticeVisible
}

func (m *MemoryForm) Mark(field string) {
	m.mu.Lock()
	m.cues[field] = true
	m.mu.Unlock()
}

func (m *MemoryForm) Clear(field string) {
	m.mu.Lock()
	delete(m.cues, field)
	m.mu.Unlock()
}

// Cued reports whether a field currently carries the error cue.
func (m *MemoryForm) Cued(field string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cues[field]
}
