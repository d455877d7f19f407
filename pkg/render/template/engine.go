package template

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// DefaultExtension is appended to template names given without one.
const DefaultExtension = ".tpl"

var (
	// ErrNoSource is returned when neither a directory nor an fs.FS is set.
	ErrNoSource = errors.New("template: need a template directory or fs.FS")
	// ErrFilterExists is returned when a filter name is already taken.
	// pongo2 filters are process-wide.
	ErrFilterExists = errors.New("template: filter already registered")
)

// FilterFunc transforms a template value. param is nil when the filter is
// used without an argument.
type FilterFunc func(input any, param any) (any, error)

// Option configures the engine before construction.
type Option func(*options)

type options struct {
	dir     string
	files   fs.FS
	globals map[string]any
}

// WithDir loads templates from a directory on disk. Templates found there
// take precedence over the ones in WithFS.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(o *options) {
		o.files = files
	}
}

// WithGlobals seeds values every template sees.
func WithGlobals(data map[string]any) Option {
	return func(o *options) {
		if o.globals == nil {
			o.globals = make(map[string]any, len(data))
		}
		for k, v := range data {
			o.globals[k] = v
		}
	}
}

// Engine renders pongo2 templates. Parsed templates are cached by name.
type Engine struct {
	mu    sync.RWMutex
	set   *pongo2.TemplateSet
	cache map[string]*pongo2.Template
}

var _ Renderer = (*Engine)(nil)

// New constructs an Engine.
func New(opts ...Option) (*Engine, error) {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	var loaders []pongo2.TemplateLoader
	if o.dir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(o.dir)
		if err != nil {
			return nil, fmt.Errorf("template: directory %s: %w", o.dir, err)
		}
		loaders = append(loaders, local)
	}
	if o.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(o.files))
	}
	if len(loaders) == 0 {
		return nil, ErrNoSource
	}

	e := &Engine{
		set:   pongo2.NewSet("formflow", loaders...),
		cache: make(map[string]*pongo2.Template),
	}
	if err := e.GlobalContext(o.globals); err != nil {
		return nil, err
	}
	return e, nil
}

// RenderTemplate renders a named template and also writes the result to
// every writer in out.
func (e *Engine) RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error) {
	if path.Ext(name) == "" {
		name += DefaultExtension
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}

	e.mu.RLock()
	rendered, err := tmpl.Execute(pongo2.Context(data))
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("template: execute %s: %w", name, err)
	}

	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

// RegisterFilter makes fn available as {{ value|name }}.
func (e *Engine) RegisterFilter(name string, fn FilterFunc) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("template: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("%w: %q", ErrFilterExists, name)
	}
	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil && !param.IsNil() {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values every template sees.
func (e *Engine) GlobalContext(data map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context, len(data))
	}
	e.set.Globals.Update(pongo2.Context(data))
	return nil
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[name]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("template: load %s: %w", name, err)
	}
	e.cache[name] = tmpl
	return tmpl, nil
}
