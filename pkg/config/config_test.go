package config

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/validation"
)

func TestParseEmptyYieldsDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOverridesAndMerges(t *testing.T) {
	const doc = `
locale: en
messages:
  invalidEmail: "That email looks wrong"
contact:
  timings:
    delay: 250ms
  labels:
    pending: "Sending..."
  submitLabel: "Send"
  fieldLabels:
    name: "Your name"
newsletter:
  timings:
    cueWindow: 4s
theme:
  variant: dark
  templates: ./theme
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Messages.InvalidEmail != "That email looks wrong" {
		t.Fatalf("message override ignored")
	}
	if cfg.Messages.Required != validation.English.Required {
		t.Fatalf("expected English fallback, got %q", cfg.Messages.Required)
	}
	if cfg.Contact.Timings.Delay != 250*time.Millisecond {
		t.Fatalf("delay override ignored: %v", cfg.Contact.Timings.Delay)
	}
	if cfg.Contact.Timings.SuccessWindow != 5*time.Second {
		t.Fatalf("success window default lost: %v", cfg.Contact.Timings.SuccessWindow)
	}
	if cfg.Newsletter.Timings.CueWindow != 4*time.Second || cfg.Newsletter.Timings.Delay != time.Second {
		t.Fatalf("newsletter timings not merged: %+v", cfg.Newsletter.Timings)
	}
	if cfg.Contact.Labels.Pending != "Sending..." || cfg.Contact.Labels.Success == "" {
		t.Fatalf("labels not merged: %+v", cfg.Contact.Labels)
	}
	if cfg.Theme.Templates != "./theme" {
		t.Fatalf("template dir ignored: %q", cfg.Theme.Templates)
	}
	if cfg.Theme.Name != "bistro" || cfg.Theme.Variant != "dark" {
		t.Fatalf("theme not merged: %+v", cfg.Theme)
	}

	form := model.ContactForm()
	if err := model.Apply(&form, cfg.Decorator()); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	if form.SubmitLabel != "Send" {
		t.Fatalf("submit label override ignored: %q", form.SubmitLabel)
	}
	if name, _ := form.Field("name"); name.Label != "Your name" {
		t.Fatalf("field label override ignored: %q", name.Label)
	}
	if len(cfg.ControllerOptions(model.FormKindContact)) != 3 {
		t.Fatalf("expected three controller options")
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("contcat: {}\n")); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestParseRejectsUnknownLocale(t *testing.T) {
	if _, err := Parse([]byte("locale: fr\n")); err == nil {
		t.Fatalf("expected error for unknown locale")
	}
}

func TestLoadFS(t *testing.T) {
	files := fstest.MapFS{"formflow.yaml": &fstest.MapFile{Data: []byte("locale: he\n")}}
	cfg, err := LoadFS(files, "formflow.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Messages.Required != validation.Hebrew.Required {
		t.Fatalf("unexpected catalog %+v", cfg.Messages)
	}
	if _, err := LoadFS(files, "missing.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("FORMFLOW_LOG_LEVEL", "debug")
	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	if env.LogLevel != "debug" {
		t.Fatalf("expected debug level, got %q", env.LogLevel)
	}
	if env.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", env.Addr)
	}
}

func TestEnvOrigins(t *testing.T) {
	env := Env{CORSOrigins: " https://bistro.example, ,http://localhost:3000"}
	want := []string{"https://bistro.example", "http://localhost:3000"}
	if diff := cmp.Diff(want, env.Origins()); diff != "" {
		t.Fatalf("origins mismatch (-want +got):\n%s", diff)
	}
	if (Env{}).Origins() != nil {
		t.Fatalf("expected no origins")
	}
}

func TestParseKeepsExplicitZeroTimings(t *testing.T) {
	const doc = `
contact:
  timings:
    delay: 0s
newsletter:
  timings:
    cueWindow: 0s
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Contact.Timings.Delay != 0 {
		t.Fatalf("explicit zero delay replaced by %v", cfg.Contact.Timings.Delay)
	}
	if cfg.Contact.Timings.SuccessWindow != 5*time.Second {
		t.Fatalf("absent success window lost its default: %v", cfg.Contact.Timings.SuccessWindow)
	}
	if cfg.Newsletter.Timings.CueWindow != 0 || cfg.Newsletter.Timings.Delay != time.Second {
		t.Fatalf("newsletter timings: %+v", cfg.Newsletter.Timings)
	}
}
