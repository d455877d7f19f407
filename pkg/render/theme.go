package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// ErrThemeNotFound is returned when a selection names an unknown theme.
var ErrThemeNotFound = errors.New("render: theme not found")

// DefaultThemeName is the theme shipped with the landing page.
const DefaultThemeName = "bistro"

// BistroManifest returns the landing page palette. The error and success
// colours are the ones the form cues use.
func BistroManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"primary": "#c05621",
			"surface": "#ffffff",
			"text":    "#2d3748",
			"success": "#48bb78",
			"error":   "#e53e3e",
		},
		Templates: map[string]string{
			"forms.page": "page.tpl",
			"forms.form": "form.tpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"stylesheet": "styles.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface": "#1a202c",
					"text":    "#f7fafc",
				},
			},
		},
	}
}

type manifestRegistry interface {
	Register(*theme.Manifest) error
}

// Themes holds registered manifests and selects theme/variant pairs.
type Themes struct {
	mu           sync.RWMutex
	registry     manifestRegistry
	manifests    map[string]*theme.Manifest
	defaultTheme string
}

var _ theme.ThemeSelector = (*Themes)(nil)

// NewThemes registers manifests; the first one becomes the default.
func NewThemes(manifests ...*theme.Manifest) (*Themes, error) {
	t := &Themes{
		registry:  theme.NewRegistry(),
		manifests: make(map[string]*theme.Manifest),
	}
	for _, m := range manifests {
		if err := t.Register(m); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Register adds a manifest.
func (t *Themes) Register(m *theme.Manifest) error {
	if m == nil || strings.TrimSpace(m.Name) == "" {
		return errors.New("render: theme manifest name is required")
	}
	if err := t.registry.Register(m); err != nil {
		return fmt.Errorf("render: register theme %q: %w", m.Name, err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.manifests[m.Name] = m
	if t.defaultTheme == "" {
		t.defaultTheme = m.Name
	}
	return nil
}

// Select resolves a theme and variant. An empty name picks the default
// theme; an unknown variant falls back to the base tokens.
func (t *Themes) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if strings.TrimSpace(name) == "" {
		name = t.defaultTheme
	}
	m, ok := t.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if _, ok := m.Variants[variant]; !ok {
		variant = ""
	}
	return &theme.Selection{Theme: m.Name, Variant: variant, Manifest: m}, nil
}

// RendererConfig flattens a selection into tokens, CSS variables, partials
// and an asset resolver. Variant values override the base manifest.
func RendererConfig(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	m := sel.Manifest
	variant := m.Variants[sel.Variant]

	tokens := mergeStrings(m.Tokens, variant.Tokens)
	partials := mergeStrings(m.Templates, variant.Templates)
	assets := mergeStrings(m.Assets.Files, variant.Assets.Files)
	prefix := m.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}

	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  vars,
		AssetURL: func(key string) string {
			file, ok := assets[key]
			if !ok {
				return ""
			}
			return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(file, "/")
		},
	}
}

// CSSVarsStyle renders CSS variables as a declaration list in key order.
func CSSVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s: %s; ", key, cfg.CSSVars[key])
	}
	return strings.TrimSpace(b.String())
}

func mergeStrings(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
