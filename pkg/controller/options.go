package controller

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// Timings holds the delays of a submission flow.
type Timings struct {
	// Delay is the simulated submission latency (Pending -> Succeeded).
	Delay time.Duration `yaml:"delay"`
	// SuccessWindow is how long the success notice stays visible.
	SuccessWindow time.Duration `yaml:"successWindow"`
	// ConfirmWindow is how long the newsletter button shows its done label.
	ConfirmWindow time.Duration `yaml:"confirmWindow"`
	// CueWindow is how long the newsletter error cue stays on.
	CueWindow time.Duration `yaml:"cueWindow"`
}

// Labels holds the texts the controller writes into the UI.
type Labels struct {
	Pending string `yaml:"pending"`
	Done    string `yaml:"done"`
	Success string `yaml:"success"`
}

// DefaultTimings returns the delays used by the landing page for kind.
func DefaultTimings(kind model.FormKind) Timings {
	if kind == model.FormKindNewsletter {
		return Timings{
			Delay:         time.Second,
			SuccessWindow: 5 * time.Second,
			ConfirmWindow: 2 * time.Second,
			CueWindow:     3 * time.Second,
		}
	}
	return Timings{
		Delay:         1500 * time.Millisecond,
		SuccessWindow: 5 * time.Second,
		ConfirmWindow: 2 * time.Second,
		CueWindow:     3 * time.Second,
	}
}

// DefaultLabels returns the Hebrew button and notice texts for kind. The
// newsletter has no notice; its done label is the only confirmation.
func DefaultLabels(kind model.FormKind) Labels {
	if kind == model.FormKindNewsletter {
		return Labels{
			Pending: "מירשם...",
			Done:    "הרשמה הושלמה!",
		}
	}
	return Labels{
		Pending: "שולח...",
		Done:    "נשלח!",
		Success: "ההודעה נשלחה בהצלחה! נחזור אליכם בהקדם.",
	}
}

// Merge fills zero durations in t from base.
func (t Timings) Merge(base Timings) Timings {
	if t.Delay <= 0 {
		t.Delay = base.Delay
	}
	if t.SuccessWindow <= 0 {
		t.SuccessWindow = base.SuccessWindow
	}
	if t.ConfirmWindow <= 0 {
		t.ConfirmWindow = base.ConfirmWindow
	}
	if t.CueWindow <= 0 {
		t.CueWindow = base.CueWindow
	}
	return t
}

func (t Timings) clamp() Timings {
	for _, d := range []*time.Duration{&t.Delay, &t.SuccessWindow, &t.ConfirmWindow, &t.CueWindow} {
		if *d < 0 {
			*d = 0
		}
	}
	return t
}

// Merge fills blank labels in l from base.
func (l Labels) Merge(base Labels) Labels {
	if l.Pending == "" {
		l.Pending = base.Pending
	}
	if l.Done == "" {
		l.Done = base.Done
	}
	if l.Success == "" {
		l.Success = base.Success
	}
	return l
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler overrides the real-timer scheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithTimings overrides delays; zero values keep the defaults.
func WithTimings(t Timings) Option {
	return func(c *Controller) {
		c.timings = t.Merge(c.timings)
	}
}

// WithExactTimings replaces every delay, zero included. Negative values are
// treated as zero.
func WithExactTimings(t Timings) Option {
	return func(c *Controller) {
		c.timings = t.clamp()
	}
}

// WithLabels overrides button and notice texts; blank values keep the defaults.
func WithLabels(l Labels) Option {
	return func(c *Controller) {
		c.labels = l.Merge(c.labels)
	}
}

// WithMessages sets the validation message catalog.
func WithMessages(m validation.Messages) Option {
	return func(c *Controller) {
		merged := m.Merge(validation.Default)
		c.messages = &merged
	}
}

// WithLogger attaches a logger; lifecycle events are logged at debug.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithIDGenerator replaces the uuid-based submission id source.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

func defaultID() string {
	return uuid.NewString()
}
