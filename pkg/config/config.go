// Package config loads the YAML settings for the forms (timings, labels,
// messages, theme) and the process environment for the binaries.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// Config is the YAML document.
//
//	locale: he
//	messages:
//	  required: "..."
//	contact:
//	  timings: {delay: 1.5s, successWindow: 5s}
//	  labels: {pending: "שולח..."}
//	newsletter:
//	  timings: {delay: 1s, confirmWindow: 2s, cueWindow: 3s}
//	theme: {name: bistro, variant: dark}
type Config struct {
	Locale     string              `yaml:"locale"`
	Messages   validation.Messages `yaml:"messages"`
	Contact    FormConfig          `yaml:"contact"`
	Newsletter FormConfig          `yaml:"newsletter"`
	Theme      ThemeConfig         `yaml:"theme"`
}

// FormConfig overrides one form's flow.
type FormConfig struct {
	Timings     controller.Timings `yaml:"timings"`
	Labels      controller.Labels  `yaml:"labels"`
	SubmitLabel string             `yaml:"submitLabel"`
	// FieldLabels overrides field labels by field name.
	FieldLabels map[string]string `yaml:"fieldLabels"`
}

// ThemeConfig selects the theme and variant used for colour tokens.
// Templates is an optional directory holding form.tpl/page.tpl overrides.
type ThemeConfig struct {
	Name      string `yaml:"name"`
	Variant   string `yaml:"variant"`
	Templates string `yaml:"templates"`
}

// Default returns the landing page configuration.
func Default() Config {
	return Config{
		Locale:   "he",
		Messages: validation.Hebrew,
		Contact: FormConfig{
			Timings: controller.DefaultTimings(model.FormKindContact),
			Labels:  controller.DefaultLabels(model.FormKindContact),
		},
		Newsletter: FormConfig{
			Timings: controller.DefaultTimings(model.FormKindNewsletter),
			Labels:  controller.DefaultLabels(model.FormKindNewsletter),
		},
		Theme: ThemeConfig{Name: "bistro"},
	}
}

// Parse decodes YAML over the defaults. Timings absent from the document
// keep their defaults; an explicit zero is kept. Unknown keys are rejected so
// typos surface at start-up.
func Parse(data []byte) (Config, error) {
	def := Default()
	raw := Config{
		Contact:    FormConfig{Timings: def.Contact.Timings},
		Newsletter: FormConfig{Timings: def.Newsletter.Timings},
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return raw.withDefaults()
}

// Load reads a YAML file. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadFS reads a YAML file from fsys.
func LoadFS(fsys fs.FS, name string) (Config, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", name, err)
	}
	return Parse(data)
}

func (c Config) withDefaults() (Config, error) {
	def := Default()
	if c.Locale == "" {
		c.Locale = def.Locale
	}
	base, err := validation.Catalog(c.Locale)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	c.Messages = c.Messages.Merge(base)

	c.Contact.Labels = c.Contact.Labels.Merge(def.Contact.Labels)
	c.Newsletter.Labels = c.Newsletter.Labels.Merge(def.Newsletter.Labels)
	if c.Theme.Name == "" {
		c.Theme.Name = def.Theme.Name
	}
	return c, nil
}

// Form returns the per-kind overrides.
func (c Config) Form(kind model.FormKind) FormConfig {
	if kind == model.FormKindNewsletter {
		return c.Newsletter
	}
	return c.Contact
}

// ControllerOptions returns the controller options for a form kind.
func (c Config) ControllerOptions(kind model.FormKind) []controller.Option {
	fc := c.Form(kind)
	return []controller.Option{
		controller.WithExactTimings(fc.Timings),
		controller.WithLabels(fc.Labels),
		controller.WithMessages(c.Messages),
	}
}

// Decorator applies submit and field label overrides to a form model.
func (c Config) Decorator() model.Decorator {
	return model.DecoratorFunc(func(form *model.FormModel) error {
		fc := c.Form(form.Kind)
		if fc.SubmitLabel != "" {
			form.SubmitLabel = fc.SubmitLabel
		}
		for i := range form.Fields {
			if label, ok := fc.FieldLabels[form.Fields[i].Name]; ok {
				form.Fields[i].Label = label
			}
		}
		return nil
	})
}
