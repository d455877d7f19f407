package template

import "io"

// Renderer is what the HTML form renderer needs from a template engine.
type Renderer interface {
	RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn FilterFunc) error
	GlobalContext(data map[string]any) error
}
