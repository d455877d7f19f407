package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formflow/pkg/model"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
)

const (
	extensionKind        = "x-formflow-kind"
	extensionOrder       = "x-formflow-order"
	extensionSubmitLabel = "x-formflow-submit-label"
	extensionPlaceholder = "x-formflow-placeholder"
)

var formMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Forms extracts one form per operation that has a request body.
func (p *Parser) Forms(ctx context.Context, doc pkgopenapi.Document) (map[string]model.FormModel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	spec, err := p.load(ctx, doc)
	if err != nil {
		return nil, err
	}

	forms := make(map[string]model.FormModel)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			form, err := buildForm(method, path, op)
			if err != nil {
				if p.options.SkipEmpty && errors.Is(err, errNoFields) {
					continue
				}
				return nil, err
			}
			if _, exists := forms[form.ID]; exists {
				return nil, fmt.Errorf("openapi parser: duplicate operation %q", form.ID)
			}
			forms[form.ID] = form
		}
	}

	if len(forms) == 0 {
		return nil, errors.New("openapi parser: no forms extracted")
	}
	return forms, nil
}

var errNoFields = errors.New("openapi parser: operation has no form fields")

func (p *Parser) load(ctx context.Context, doc pkgopenapi.Document) (*openapi3.T, error) {
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = false

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.ValidateDocument {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}
	return spec, nil
}

func buildForm(method, path string, op *openapi3.Operation) (model.FormModel, error) {
	id := op.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}

	schema := requestSchema(op.RequestBody)
	if schema == nil || len(schema.Properties) == 0 {
		return model.FormModel{}, fmt.Errorf("%w: %s", errNoFields, id)
	}

	form := model.FormModel{
		ID:          id,
		Kind:        model.FormKindContact,
		Endpoint:    path,
		Method:      strings.ToUpper(method),
		Summary:     op.Summary,
		SubmitLabel: stringExtension(op.Extensions, extensionSubmitLabel),
	}

	if raw := stringExtension(op.Extensions, extensionKind); raw != "" {
		switch kind := model.FormKind(strings.ToLower(raw)); kind {
		case model.FormKindContact, model.FormKindNewsletter:
			form.Kind = kind
		default:
			return model.FormModel{}, fmt.Errorf("openapi parser: operation %s: unknown form kind %q", id, raw)
		}
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	for _, name := range fieldOrder(schema) {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		if !isScalarString(prop) {
			continue
		}
		form.Fields = append(form.Fields, model.Field{
			Name:        name,
			Kind:        fieldKind(prop),
			Required:    required[name],
			Label:       strings.TrimSpace(prop.Title),
			Placeholder: stringExtension(prop.Extensions, extensionPlaceholder),
		})
	}

	if len(form.Fields) == 0 {
		return model.FormModel{}, fmt.Errorf("%w: %s", errNoFields, id)
	}
	return form, nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range formMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// fieldOrder lists x-formflow-order entries first, then the remaining
// properties alphabetically; schema properties carry no order of their own.
func fieldOrder(schema *openapi3.Schema) []string {
	seen := make(map[string]bool, len(schema.Properties))
	var out []string
	if list, ok := schema.Extensions[extensionOrder].([]any); ok {
		for _, entry := range list {
			name, ok := entry.(string)
			if !ok || seen[name] {
				continue
			}
			if _, exists := schema.Properties[name]; !exists {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}

	rest := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func isScalarString(schema *openapi3.Schema) bool {
	if schema.Type == nil {
		return true
	}
	for _, t := range schema.Type.Slice() {
		if t == openapi3.TypeString {
			return true
		}
	}
	return false
}

func fieldKind(schema *openapi3.Schema) model.FieldKind {
	if raw := stringExtension(schema.Extensions, extensionKind); raw != "" {
		return model.ParseFieldKind(raw)
	}
	return model.ParseFieldKind(schema.Format)
}

func stringExtension(extensions map[string]any, key string) string {
	if len(extensions) == 0 {
		return ""
	}
	value, ok := extensions[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
