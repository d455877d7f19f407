package controller

import (

	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/internal/logging"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/validation"
)

func (c *Controller) submitNewsletter() State {
	c.mu.Lock()
	if current, busy := c.busyLocked(); busy {
		c.mu.Unlock()
		c.logger.Debug("submit ignored while busy", zap.Stringer("state", current))
		return current
	}

	field, ok := c.emailFieldLocked()
	if !ok {
		current := c.state
		c.mu.Unlock()
		c.logger.Warn("newsletter form has no email field")
		return current
	}

	value := validation.Trim(field.Value)
	if value == "" || !validation.IsEmail(value) {
		c.cueSeq++
		seq := c.cueSeq
		if c.ui.Cue != nil {
			c.ui.Cue.Mark(field.Name)
		}
		current := c.state
		c.mu.Unlock()

		c.logger.Debug("newsletter email rejected", zap.String("email", logging.MaskEmail(value)))
		c.sched.After(c.timings.CueWindow, func() { c.clearCue(seq, field.Name) })
		return current
	}

	var ev events
	gen, id := c.beginLocked(&ev)
	c.mu.Unlock()

	c.logger.Debug("subscription pending",
		zap.String("submission_id", id),
		zap.String("email", logging.MaskEmail(value)),
	)
	c.dispatch(ev)
	c.sched.After(c.timings.Delay, func() { c.completeNewsletter(gen, field.Name) })
	return StatePending
}

func (c *Controller) completeNewsletter(gen uint64, emailField string) {
	c.mu.Lock()
	if gen != c.generation || c.state != StatePending {
		c.mu.Unlock()
		return
	}
	var ev events
	c.ui.Submit.SetLabel(c.labels.Done)
	c.ui.Fields.SetValue(emailField, "")
	c.setStateLocked(StateSucceeded, &ev)
	id := c.submission
	c.mu.Unlock()

	c.logger.Debug("subscription succeeded", zap.String("submission_id", id))
	c.dispatch(ev)
	c.sched.After(c.timings.ConfirmWindow, func() { c.settle(gen) })
}

// clearCue removes the error cue unless a later rejection re-armed it.
func (c *Controller) clearCue(seq uint64, field string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.cueSeq || c.ui.Cue == nil {
		return
	}
	c.ui.Cue.Clear(field)
}

func (c *Controller) emailFieldLocked() (model.Field, bool) {
	for _, f := range c.ui.Fields.Fields() {
		if f.Kind == model.FieldKindEmail {
			return f, true
		}
	}
	return model.Field{}, false
}
