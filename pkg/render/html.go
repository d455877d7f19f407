package render

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render/template"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Templates returns the built-in form and page templates.
func Templates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// HTMLOption configures the HTML renderer.
type HTMLOption func(*HTML)

// WithTemplateDir loads "form.tpl" and "page.tpl" overrides from dir. Either
// may be missing; the built-in template is used instead.
func WithTemplateDir(dir string) HTMLOption {
	return func(h *HTML) {
		h.dir = strings.TrimSpace(dir)
	}
}

// WithLanguage sets the page language; Hebrew and Arabic pages render
// right-to-left.
func WithLanguage(lang string) HTMLOption {
	return func(h *HTML) {
		if trimmed := strings.TrimSpace(lang); trimmed != "" {
			h.lang = trimmed
		}
	}
}

// HTML renders forms with pongo2 templates.
type HTML struct {
	templates template.Renderer
	lang      string
	dir       string
}

var _ Renderer = (*HTML)(nil)

// NewHTML builds the HTML renderer over the embedded templates.
func NewHTML(options ...HTMLOption) (*HTML, error) {
	h := &HTML{lang: "he"}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	engine, err := template.New(
		template.WithDir(h.dir),
		template.WithFS(Templates()),
		template.WithGlobals(map[string]any{
			"lang": h.lang,
			"dir":  direction(h.lang),
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	err = engine.RegisterFilter("inputtype", inputTypeFilter)
	if err != nil && !errors.Is(err, template.ErrFilterExists) {
		return nil, fmt.Errorf("render: %w", err)
	}
	h.templates = engine
	return h, nil
}

func (h *HTML) Name() string        { return "html" }
func (h *HTML) ContentType() string { return "text/html; charset=utf-8" }

// Render renders one form fragment.
func (h *HTML) Render(_ context.Context, form model.FormModel, opts RenderOptions) ([]byte, error) {
	out, err := h.templates.RenderTemplate("form", formContext(form, opts))
	if err != nil {
		return nil, fmt.Errorf("render: form %q: %w", form.ID, err)
	}
	return []byte(out), nil
}

// Section is one form on a page together with its live state.
type Section struct {
	Form    model.FormModel
	Options RenderOptions
}

// Page describes a full document.
type Page struct {
	Title    string
	Sections []Section
	Theme    *theme.RendererConfig
}

// RenderPage renders a full HTML document with every section in order.
func (h *HTML) RenderPage(ctx context.Context, page Page) ([]byte, error) {
	sections := make([]any, 0, len(page.Sections))
	for _, s := range page.Sections {
		opts := s.Options
		if opts.Theme == nil {
			opts.Theme = page.Theme
		}
		fragment, err := h.Render(ctx, s.Form, opts)
		if err != nil {
			return nil, err
		}
		sections = append(sections, map[string]any{
			"id":   string(s.Form.Kind),
			"html": string(fragment),
		})
	}

	data := map[string]any{
		"title":    page.Title,
		"cssVars":  CSSVarsStyle(page.Theme),
		"sections": sections,
	}
	if page.Theme != nil && page.Theme.AssetURL != nil {
		data["stylesheet"] = page.Theme.AssetURL("stylesheet")
	}

	out, err := h.templates.RenderTemplate("page", data)
	if err != nil {
		return nil, fmt.Errorf("render: page: %w", err)
	}
	return []byte(out), nil
}

func formContext(form model.FormModel, opts RenderOptions) map[string]any {
	action := opts.Action
	if action == "" {
		action = form.Endpoint
	}
	method := strings.ToLower(form.Method)
	if method == "" {
		method = "post"
	}
	submitLabel := opts.SubmitLabel
	if submitLabel == "" {
		submitLabel = form.SubmitLabel
	}

	fields := make([]any, 0, len(form.Fields))
	for _, f := range form.Fields {
		value, ok := opts.Values[f.Name]
		if !ok {
			value = f.Value
		}
		fields = append(fields, map[string]any{
			"id":          fieldID(form, f),
			"name":        f.Name,
			"kind":        string(f.Kind),
			"label":       f.Label,
			"placeholder": f.Placeholder,
			"required":    f.Required,
			"value":       value,
			"error":       opts.Errors[f.Name],
			"cued":        opts.Cued[f.Name],
		})
	}

	return map[string]any{
		"form": map[string]any{
			"id":     form.ID,
			"kind":   string(form.Kind),
			"method": method,
			"action": action,
			"slots":  form.Kind != model.FormKindNewsletter,
		},
		"fields": fields,
		"submit": map[string]any{
			"label":    submitLabel,
			"disabled": opts.SubmitDisabled,
		},
		"notice": opts.Notice,
	}
}

func fieldID(form model.FormModel, f model.Field) string {
	if form.ID == "" {
		return f.Name
	}
	return form.ID + "-" + f.Name
}

// inputTypeFilter maps a field kind to the HTML input type.
func inputTypeFilter(input any, _ any) (any, error) {
	kind, _ := input.(string)
	switch model.FieldKind(kind) {
	case model.FieldKindEmail:
		return "email", nil
	case model.FieldKindTel:
		return "tel", nil
	default:
		return "text", nil
	}
}

func direction(lang string) string {
	tag := strings.ToLower(lang)
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	switch tag {
	case "he", "iw", "ar", "fa", "ur":
		return "rtl"
	default:
		return "ltr"
	}
}
