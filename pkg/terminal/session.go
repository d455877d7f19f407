// Package terminal fills a form interactively in a terminal. Every answer is
// revalidated through the form controller and the submission runs the same
// lifecycle as the page, on real timers.
package terminal

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/model"
)

// Result reports how a session ended.
type Result struct {
	Kind      model.FormKind
	State     controller.State
	Submitted bool
	// Notice is the success notice, or the done label on forms without one.
	Notice    string
	Values    map[string]string
}

// Session drives one form through the terminal.
type Session struct {
	form           model.FormModel
	driver         PromptDriver
	theme          Theme
	controllerOpts []controller.Option
	maxAttempts    int
	skipConfirm    bool
	logger         *zap.Logger
}

// NewSession builds a session for form.
func NewSession(form model.FormModel, options ...Option) *Session {
	s := &Session{
		form:        form,
		theme:       DefaultTheme,
		maxAttempts: 5,
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Run prompts every field, then submits and waits for the outcome. It
// returns once the form reaches Succeeded, the submission is refused, or
// ctx is done.
func (s *Session) Run(ctx context.Context) (Result, error) {
	page := controller.NewMemoryForm(s.form)
	opts := append([]controller.Option{controller.WithLogger(s.logger)}, s.controllerOpts...)
	ctrl, err := controller.New(s.form.Kind, page.UI(), opts...)
	if err != nil {
		return Result{}, fmt.Errorf("terminal: %w", err)
	}

	result := Result{Kind: s.form.Kind, State: controller.StateIdle}

	if s.form.Summary != "" {
		if err := s.driver.Info(ctx, s.theme.InfoPrefix+s.form.Summary); err != nil {
			return result, err
		}
	}
	for _, field := range s.form.Fields {
		if err := s.promptField(ctx, ctrl, page, field); err != nil {
			return result, err
		}
	}
	result.Values = values(page)

	if !s.skipConfirm {
		ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: s.form.SubmitLabel + "?", Default: true})
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
	}

	done := make(chan controller.State, 4)
	var pendingLabel string
	ctrl.OnStateChange(func(_, to controller.State) {
		if to == controller.StatePending {
			pendingLabel = page.Label()
		}
		select {
		case done <- to:
		default:
		}
	})

	state := ctrl.Submit()
	result.State = state
	if state != controller.StatePending {
		if page.Cued(emailField(s.form)) {
			_ = s.driver.Info(ctx, s.theme.ErrorPrefix+invalidEmailText(ctrl, page, s.form))
		}
		return result, nil
	}
	result.Submitted = true
	if err := s.driver.Info(ctx, s.theme.InfoPrefix+pendingLabel); err != nil {
		return result, err
	}

	for {
		select {
		case <-ctx.Done():
			ctrl.Reset()
			result.State = ctrl.State()
			return result, ctx.Err()
		case to := <-done:
			if to != controller.StateSucceeded {
				continue
			}
			result.State = to
			notice, visible := page.Notice()
			if !visible {
				notice = page.Label()
			}
			result.Notice = notice
			return result, s.driver.Info(ctx, s.theme.SuccessPrefix+notice)
		}
	}
}

func (s *Session) promptField(ctx context.Context, ctrl *controller.Controller, page *controller.MemoryForm, field model.Field) error {
	for attempt := 1; ; attempt++ {
		value, err := s.ask(ctx, field, page.Value(field.Name))
		if err != nil {
			return err
		}
		if err := page.Fill(field.Name, value); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		res, err := ctrl.ValidateField(field.Name)
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		if res.Valid {
			return nil
		}
		s.logger.Debug("field rejected", zap.String("field", field.Name), zap.String("code", string(res.Code)))
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+res.Message); err != nil {
			return err
		}
		if s.maxAttempts > 0 && attempt >= s.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Name)
		}
	}
}

func (s *Session) ask(ctx context.Context, field model.Field, current string) (string, error) {
	message := promptLabel(field)
	if field.Kind == model.FieldKindLongText {
		return s.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: current, Help: field.Placeholder})
	}
	return s.driver.Input(ctx, InputConfig{Message: message, Default: current, Help: field.Placeholder})
}

func promptLabel(field model.Field) string {
	label := field.Label
	if label == "" {
		label = field.Placeholder
	}
	if label == "" {
		label = field.Name
	}
	if field.Required {
		label += " *"
	}
	return label
}

func values(page *controller.MemoryForm) map[string]string {
	fields := page.Fields()
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Name] = f.Value
	}
	return out
}

func emailField(form model.FormModel) string {
	if f, ok := form.FirstOfKind(model.FieldKindEmail); ok {
		return f.Name
	}
	return ""
}

// invalidEmailText reuses the validation message for the cued email field.
func invalidEmailText(ctrl *controller.Controller, page *controller.MemoryForm, form model.FormModel) string {
	name := emailField(form)
	if msg := page.ErrorFor(name); msg != "" {
		return msg
	}
	if res, err := ctrl.ValidateField(name); err == nil && !res.Valid {
		return res.Message
	}
	return name
}
