package controller_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/model"
)

func TestNewsletterRejectsBadEmailWithTransientCue(t *testing.T) {
	h := newHarness(t, model.NewsletterForm())
	h.fill(t, map[string]string{"email": "not-an-email"})

	if got := h.ctrl.Submit(); got != controller.StateIdle {
		t.Fatalf("expected idle, got %s", got)
	}
	if !h.form.Cued("email") {
		t.Fatalf("email input should carry the error cue")
	}
	if !h.form.Enabled() {
		t.Fatalf("submit control must stay enabled")
	}

	h.sched.Advance(2999 * time.Millisecond)
	if !h.form.Cued("email") {
		t.Fatalf("cue cleared too early")
	}
	h.sched.Advance(time.Millisecond)
	if h.form.Cued("email") {
		t.Fatalf("cue should clear after the window")
	}
	if h.ctrl.State() != controller.StateIdle || len(h.states) != 0 {
		t.Fatalf("newsletter rejection must not transition, got %v", h.states)
	}
}

func TestNewsletterRejectsEmptyEmail(t *testing.T) {
	h := newHarness(t, model.NewsletterForm())
	if got := h.ctrl.Submit(); got != controller.StateIdle {
		t.Fatalf("expected idle, got %s", got)
	}
	if !h.form.Cued("email") {
		t.Fatalf("empty email should be cued")
	}
}

func TestNewsletterRepeatedRejectionExtendsCue(t *testing.T) {
	h := newHarness(t, model.NewsletterForm())
	h.fill(t, map[string]string{"email": "bad"})

	h.ctrl.Submit()
	h.sched.Advance(2 * time.Second)
	h.ctrl.Submit()

	h.sched.Advance(time.Second)
	if !h.form.Cued("email") {
		t.Fatalf("the first window must not clear a re-armed cue")
	}
	h.sched.Advance(2 * time.Second)
	if h.form.Cued("email") {
		t.Fatalf("cue should clear three seconds after the last rejection")
	}
}

func TestNewsletterLifecycle(t *testing.T) {
	h := newHarness(t, model.NewsletterForm())
	h.fill(t, map[string]string{"email": "guest@example.com"})
	original := h.form.Label()
	labels := controller.DefaultLabels(model.FormKindNewsletter)

	if got := h.ctrl.Submit(); got != controller.StatePending {
		t.Fatalf("expected pending, got %s", got)
	}
	if h.form.Enabled() || h.form.Label() != labels.Pending {
		t.Fatalf("control should be disabled with the pending label, got %q", h.form.Label())
	}

	h.sched.Advance(time.Second)
	if h.ctrl.State() != controller.StateSucceeded {
		t.Fatalf("expected succeeded, got %s", h.ctrl.State())
	}
	if h.form.Label() != labels.Done {
		t.Fatalf("expected done label, got %q", h.form.Label())
	}
	if h.form.Value("email") != "" {
		t.Fatalf("email should be cleared")
	}
	if _, visible := h.form.Notice(); visible {
		t.Fatalf("newsletter success must not show a notice")
	}
	if got := h.ctrl.Submit(); got != controller.StateSucceeded {
		t.Fatalf("submit during the confirm window should be ignored, got %s", got)
	}

	h.sched.Advance(2 * time.Second)
	if h.ctrl.State() != controller.StateIdle {
		t.Fatalf("expected idle, got %s", h.ctrl.State())
	}
	if !h.form.Enabled() || h.form.Label() != original {
		t.Fatalf("control not restored: enabled=%v label=%q", h.form.Enabled(), h.form.Label())
	}
	want := []controller.State{controller.StatePending, controller.StateSucceeded, controller.StateIdle}
	if diff := cmp.Diff(want, h.states); diff != "" {
		t.Fatalf("transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestNewsletterWithoutEmailField(t *testing.T) {
	def := model.FormModel{Kind: model.FormKindNewsletter, Fields: []model.Field{{Name: "name", Kind: model.FieldKindText}}}
	h := newHarness(t, def)
	if got := h.ctrl.Submit(); got != controller.StateIdle {
		t.Fatalf("expected idle, got %s", got)
	}
	if h.sched.Pending() != 0 {
		t.Fatalf("nothing should be scheduled")
	}
}
