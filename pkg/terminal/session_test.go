package terminal

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/validation"
)

type stubDriver struct {
	answers  map[string][]string
	confirm  bool
	asked    []string
	infos    []string
	inputErr error
}

func (d *stubDriver) next(msg string) (string, error) {
	d.asked = append(d.asked, msg)
	if d.inputErr != nil {
		return "", d.inputErr
	}
	queue := d.answers[msg]
	if len(queue) == 0 {
		return "", nil
	}
	d.answers[msg] = queue[1:]
	return queue[0], nil
}

func (d *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	return d.next(cfg.Message)
}

func (d *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	return d.next(cfg.Message)
}

func (d *stubDriver) Confirm(context.Context, ConfirmConfig) (bool, error) {
	return d.confirm, nil
}

func (d *stubDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func englishContact() model.FormModel {
	form := model.ContactForm()
	labels := map[string]string{"name": "Name", "email": "Email", "phone": "Phone", "subject": "Subject", "message": "Message"}
	for i := range form.Fields {
		form.Fields[i].Label = labels[form.Fields[i].Name]
	}
	form.Summary = ""
	form.SubmitLabel = "Send"
	return form
}

func newTestSession(form model.FormModel, driver PromptDriver, opts ...Option) *Session {
	base := []Option{
		WithPromptDriver(driver),
		WithTheme(Theme{ErrorPrefix: "! ", SuccessPrefix: "+ "}),
		WithControllerOptions(
			controller.WithScheduler(controller.Immediate),
			controller.WithMessages(validation.English),
			controller.WithLabels(controller.Labels{Pending: "Sending...", Success: "Thanks!"}),
		),
	}
	return NewSession(form, append(base, opts...)...)
}

func TestSessionContactRepromptsInvalidFields(t *testing.T) {
	driver := &stubDriver{
		confirm: true,
		answers: map[string][]string{
			"Name *":    {"D", "Dana"},
			"Email *":   {"dana@example.com"},
			"Phone":     {"12", "050-1234567"},
			"Subject":   {""},
			"Message *": {"Table for four on Friday"},
		},
	}
	res, err := newTestSession(englishContact(), driver).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !res.Submitted || res.State != controller.StateSucceeded {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Notice != "Thanks!" {
		t.Fatalf("unexpected notice %q", res.Notice)
	}

	wantAsked := []string{"Name *", "Name *", "Email *", "Phone", "Phone", "Subject", "Message *"}
	if diff := cmp.Diff(wantAsked, driver.asked); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
	wantInfos := []string{
		"! " + validation.English.NameTooShort,
		"! " + validation.English.InvalidPhone,
		"Sending...",
		"+ Thanks!",
	}
	if diff := cmp.Diff(wantInfos, driver.infos); diff != "" {
		t.Fatalf("infos mismatch (-want +got):\n%s", diff)
	}
	if res.Values["name"] != "Dana" || res.Values["phone"] != "050-1234567" {
		t.Fatalf("unexpected values %v", res.Values)
	}
}

func TestSessionDeclinedConfirm(t *testing.T) {
	driver := &stubDriver{answers: map[string][]string{"email": {"guest@example.com"}}}
	form := model.NewsletterForm()
	form.Fields[0].Placeholder = ""
	form.Fields[0].Required = false

	res, err := newTestSession(form, driver).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Submitted || res.State != controller.StateIdle {
		t.Fatalf("expected no submission, got %+v", res)
	}
}

func TestSessionNewsletter(t *testing.T) {
	form := model.NewsletterForm()
	form.Fields[0].Placeholder = "Your email"
	driver := &stubDriver{answers: map[string][]string{"Your email *": {"guest@example.com"}}}

	res, err := newTestSession(form, driver, WithSkipConfirm(),
		WithControllerOptions(controller.WithLabels(controller.Labels{Done: "Subscribed!"})),
	).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.State != controller.StateSucceeded || res.Notice != "Subscribed!" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestSessionTooManyAttempts(t *testing.T) {
	driver := &stubDriver{answers: map[string][]string{"Name *": {"", "", ""}}}
	_, err := newTestSession(englishContact(), driver, WithMaxAttempts(3)).Run(context.Background())
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if len(driver.asked) != 3 {
		t.Fatalf("expected three prompts, got %d", len(driver.asked))
	}
}

func TestSessionAborted(t *testing.T) {
	driver := &stubDriver{answers: map[string][]string{}, inputErr: ErrAborted}
	_, err := newTestSession(englishContact(), driver).Run(context.Background())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestPromptLabel(t *testing.T) {
	cases := []struct {
		field model.Field
		want  string
	}{
		{field: model.Field{Name: "name", Label: "Name", Required: true}, want: "Name *"},
		{field: model.Field{Name: "email", Placeholder: "Your email"}, want: "Your email"},
		{field: model.Field{Name: "subject"}, want: "subject"},
	}
	for _, tc := range cases {
		if got := promptLabel(tc.field); got != tc.want {
			t.Fatalf("promptLabel(%+v) = %q, want %q", tc.field, got, tc.want)
		}
	}
}
