package controller

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/internal/logging"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// Controller owns validation and submission for one form instance.
type Controller struct {
	kind     model.FormKind
	ui       UI
	sched    Scheduler
	timings  Timings
	labels   Labels
	messages *validation.Messages
	logger   *zap.Logger
	newID    func() string

	mu             sync.Mutex
	state          State
	controlEnabled bool
	restoreLabel   string
	submission     string
	generation     uint64
	cueSeq         uint64
	invalid        map[string]bool

	validityListeners []ValidityListener
	stateListeners    []StateListener
}

type validityChange struct {
	field string
	valid bool
}

type stateChange struct {
	from, to State
}

// events collects notifications produced under the lock so they can be
// dispatched once it is released.
type events struct {
	validity []validityChange
	states   []stateChange
}

// New builds a controller for a form of the given kind.
func New(kind model.FormKind, ui UI, options ...Option) (*Controller, error) {
	switch kind {
	case model.FormKindContact, model.FormKindNewsletter:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if ui.Fields == nil {
		return nil, fmt.Errorf("%w: fields", ErrMissingHandle)
	}
	if ui.Submit == nil {
		return nil, fmt.Errorf("%w: submit control", ErrMissingHandle)
	}
	if kind == model.FormKindContact && ui.Errors == nil {
		return nil, fmt.Errorf("%w: error slots", ErrMissingHandle)
	}

	c := &Controller{
		kind:           kind,
		ui:             ui,
		sched:          TimerScheduler{},
		timings:        DefaultTimings(kind),
		labels:         DefaultLabels(kind),
		messages:       &validation.Default,
		logger:         zap.NewNop(),
		newID:          defaultID,
		controlEnabled: true,
		invalid:        make(map[string]bool),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.logger = c.logger.With(zap.String("form_kind", string(kind)))
	return c, nil
}

// Kind reports which submission flow the controller runs.
func (c *Controller) Kind() model.FormKind {
	return c.kind
}

// State reports the current submission state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HasError reports whether the field currently shows an error.
func (c *Controller) HasError(field string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalid[field]
}

// OnValidityChange registers fn to be told when a field's validity flips.
func (c *Controller) OnValidityChange(fn ValidityListener) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.validityListeners = append(c.validityListeners, fn)
	c.mu.Unlock()
}

// OnStateChange registers fn to be told about every state transition.
func (c *Controller) OnStateChange(fn StateListener) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.stateListeners = append(c.stateListeners, fn)
	c.mu.Unlock()
}

// ValidateField validates the live value of one field and reflects the
// result into its error slot.
func (c *Controller) ValidateField(name string) (model.ValidationResult, error) {
	c.mu.Lock()
	field, ok := c.lookupLocked(name)
	if !ok {
		c.mu.Unlock()
		return model.ValidationResult{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	var ev events
	res := validation.ValidateField(field, c.messages)
	c.applyLocked(res, &ev)
	c.mu.Unlock()

	c.dispatch(ev)
	return res, nil
}

// ValidateForm validates every field, updates every error slot and reports
// whether the whole form is valid.
func (c *Controller) ValidateForm() bool {
	c.mu.Lock()
	var ev events
	report := c.validateAllLocked(&ev)
	c.mu.Unlock()

	c.dispatch(ev)
	return report.Valid
}

// HandleBlur revalidates a field when it loses focus.
func (c *Controller) HandleBlur(name string) error {
	_, err := c.ValidateField(name)
	return err
}

// HandleInput revalidates a field on input, but only while it shows an error,
// so the message disappears as soon as the value is fixed.
func (c *Controller) HandleInput(name string) error {
	if !c.HasError(name) {
		return nil
	}
	_, err := c.ValidateField(name)
	return err
}

// Submit starts a submission. It returns StatePending when the submission
// was accepted and the unchanged current state otherwise.
func (c *Controller) Submit() State {
	if c.kind == model.FormKindNewsletter {
		return c.submitNewsletter()
	}
	return c.submitContact()
}

// Reset clears values, errors, cues and the notice and returns to Idle.
// Continuations scheduled before the reset are dropped when they fire.
func (c *Controller) Reset() {
	c.mu.Lock()
	var ev events
	c.generation++
	c.cueSeq++
	fields := c.ui.Fields.Fields()
	c.clearFieldsLocked(fields, &ev)
	if c.ui.Cue != nil {
		for _, f := range fields {
			c.ui.Cue.Clear(f.Name)
		}
	}
	if c.ui.Notice != nil {
		c.ui.Notice.Hide()
	}
	if !c.controlEnabled {
		c.restoreControlLocked()
	}
	c.setStateLocked(StateIdle, &ev)
	c.mu.Unlock()

	c.logger.Debug("form reset")
	c.dispatch(ev)
}

func (c *Controller) submitContact() State {
	c.mu.Lock()
	if current, busy := c.busyLocked(); busy {
		c.mu.Unlock()
		c.logger.Debug("submit ignored while busy", zap.Stringer("state", current))
		return current
	}

	var ev events
	report := c.validateAllLocked(&ev)
	if !report.Valid {
		current := c.state
		c.mu.Unlock()
		c.dispatch(ev)
		c.logger.Debug("submit rejected", zap.Int("invalid_fields", len(report.Invalid())))
		return current
	}

	gen, id := c.beginLocked(&ev)
	fields := c.ui.Fields.Fields()
	c.mu.Unlock()

	c.logger.Debug("submission pending",
		zap.String("submission_id", id),
		zap.String("email", logging.MaskEmail(valueOf(fields, model.FieldKindEmail))),
		zap.Duration("delay", c.timings.Delay),
	)
	c.dispatch(ev)
	c.sched.After(c.timings.Delay, func() { c.completeContact(gen) })
	return StatePending
}

func (c *Controller) completeContact(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.state != StatePending {
		c.mu.Unlock()
		return
	}
	var ev events
	c.restoreControlLocked()
	c.clearFieldsLocked(c.ui.Fields.Fields(), &ev)
	if c.ui.Notice != nil {
		c.ui.Notice.Show(c.labels.Success)
	}
	c.setStateLocked(StateSucceeded, &ev)
	id := c.submission
	c.mu.Unlock()

	c.logger.Debug("submission succeeded", zap.String("submission_id", id))
	c.dispatch(ev)
	c.sched.After(c.timings.SuccessWindow, func() { c.settle(gen) })
}

// settle ends the success window and returns to Idle.
func (c *Controller) settle(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.state != StateSucceeded {
		c.mu.Unlock()
		return
	}
	var ev events
	if c.ui.Notice != nil {
		c.ui.Notice.Hide()
	}
	if !c.controlEnabled {
		c.restoreControlLocked()
	}
	c.setStateLocked(StateIdle, &ev)
	c.mu.Unlock()

	c.dispatch(ev)
}

// busyLocked reports whether a new submission must be refused. A submission
// cannot start while pending or while the submit control is disabled.
func (c *Controller) busyLocked() (State, bool) {
	if c.state == StatePending || !c.controlEnabled {
		return c.state, true
	}
	return c.state, false
}

// beginLocked moves the form into Pending. A form still showing a previous
// success first closes that window so the only entry into Pending is Idle.
func (c *Controller) beginLocked(ev *events) (uint64, string) {
	if c.state != StateIdle {
		if c.ui.Notice != nil {
			c.ui.Notice.Hide()
		}
		c.setStateLocked(StateIdle, ev)
	}
	c.generation++
	c.submission = c.newID()
	c.restoreLabel = c.ui.Submit.Label()
	c.controlEnabled = false
	c.ui.Submit.SetEnabled(false)
	c.ui.Submit.SetLabel(c.labels.Pending)
	c.setStateLocked(StatePending, ev)
	return c.generation, c.submission
}

func (c *Controller) restoreControlLocked() {
	c.ui.Submit.SetLabel(c.restoreLabel)
	c.ui.Submit.SetEnabled(true)
	c.controlEnabled = true
}

func (c *Controller) validateAllLocked(ev *events) validation.Report {
	report := validation.ValidateForm(c.ui.Fields.Fields(), c.messages)
	for _, res := range report.Results {
		c.applyLocked(res, ev)
	}
	return report
}

// applyLocked writes a result into its error slot, unconditionally, and
// records a validity change when the shown state flips.
func (c *Controller) applyLocked(res model.ValidationResult, ev *events) {
	if c.ui.Errors != nil {
		if res.Valid {
			c.ui.Errors.ClearError(res.FieldName)
		} else {
			c.ui.Errors.SetError(res.FieldName, res.Message)
		}
	}
	wasInvalid := c.invalid[res.FieldName]
	if res.Valid {
		delete(c.invalid, res.FieldName)
	} else {
		c.invalid[res.FieldName] = true
	}
	if wasInvalid == res.Valid {
		ev.validity = append(ev.validity, validityChange{field: res.FieldName, valid: res.Valid})
	}
}

func (c *Controller) clearFieldsLocked(fields []model.Field, ev *events) {
	for _, f := range fields {
		c.ui.Fields.SetValue(f.Name, "")
		c.applyLocked(model.ValidationResult{FieldName: f.Name, Valid: true}, ev)
	}
}

func (c *Controller) setStateLocked(to State, ev *events) {
	if c.state == to {
		return
	}
	ev.states = append(ev.states, stateChange{from: c.state, to: to})
	c.state = to
}

func (c *Controller) lookupLocked(name string) (model.Field, bool) {
	for _, f := range c.ui.Fields.Fields() {
		if f.Name == name {
			return f, true
		}
	}
	return model.Field{}, false
}

func (c *Controller) dispatch(ev events) {
	if len(ev.validity) == 0 && len(ev.states) == 0 {
		return
	}
	c.mu.Lock()
	validity := append([]ValidityListener(nil), c.validityListeners...)
	states := append([]StateListener(nil), c.stateListeners...)
	c.mu.Unlock()

	for _, change := range ev.validity {
		for _, fn := range validity {
			fn(change.field, change.valid)
		}
	}
	for _, change := range ev.states {
		for _, fn := range states {
			fn(change.from, change.to)
		}
	}
}

func valueOf(fields []model.Field, kind model.FieldKind) string {
	for _, f := range fields {
		if f.Kind == kind {
			return validation.Trim(f.Value)
		}
	}
	return ""
}
