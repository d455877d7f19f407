// Package formflow validates and submits the landing page forms. The root
// package wires the OpenAPI loader and parser, the built-in form definitions
// and the controller together for callers that do not need the sub-packages.
package formflow

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	internalLoader "github.com/goliatone/go-formflow/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formflow/internal/openapi/parser"
	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/model"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
	"github.com/goliatone/go-formflow/pkg/render"
)

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// NewLoader constructs a document loader while keeping the concrete type
// hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return internalLoader.New(pkgopenapi.NewLoaderOptions(options...))
}

// NewParser constructs the kin-openapi backed form parser.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewParserOptions(options...))
}

// NewLinter constructs a checker for x-formflow hints.
func NewLinter(options ...pkgopenapi.ParserOption) pkgopenapi.Linter {
	return internalParser.New(pkgopenapi.NewParserOptions(options...))
}

// LoadForms loads an OpenAPI document and extracts its forms keyed by
// operation id.
func LoadForms(ctx context.Context, src pkgopenapi.Source, loaderOpts []pkgopenapi.LoaderOption, parserOpts ...pkgopenapi.ParserOption) (map[string]model.FormModel, error) {
	doc, err := NewLoader(loaderOpts...).Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("formflow: load %s: %w", src.Location(), err)
	}
	forms, err := NewParser(parserOpts...).Forms(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("formflow: parse %s: %w", src.Location(), err)
	}
	return forms, nil
}

// LoadForm loads a document and returns the form for one operation.
func LoadForm(ctx context.Context, src pkgopenapi.Source, operationID string, loaderOpts ...pkgopenapi.LoaderOption) (model.FormModel, error) {
	forms, err := LoadForms(ctx, src, loaderOpts)
	if err != nil {
		return model.FormModel{}, err
	}
	form, ok := forms[operationID]
	if !ok {
		return model.FormModel{}, fmt.Errorf("formflow: operation %q not found (available: %v)", operationID, SortedIDs(forms))
	}
	return form, nil
}

// BuiltinForm returns the built-in definition for a form kind.
func BuiltinForm(kind model.FormKind) (model.FormModel, error) {
	switch kind {
	case model.FormKindContact:
		return model.ContactForm(), nil
	case model.FormKindNewsletter:
		return model.NewsletterForm(), nil
	default:
		return model.FormModel{}, fmt.Errorf("%w: %q", controller.ErrUnknownKind, kind)
	}
}

// NewController builds a controller for form against the supplied handles.
func NewController(form model.FormModel, ui controller.UI, options ...controller.Option) (*controller.Controller, error) {
	return controller.New(form.Kind, ui, options...)
}

// EmbeddedTemplates exposes the built-in form and page templates so callers
// can reuse or extend them.
func EmbeddedTemplates() fs.FS {
	return render.Templates()
}

// SortedIDs lists form ids in order.
func SortedIDs(forms map[string]model.FormModel) []string {
	ids := make([]string, 0, len(forms))
	for id := range forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
