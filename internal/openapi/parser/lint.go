package parser

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formflow/pkg/model"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
)

const extensionPrefix = "x-formflow-"

var _ pkgopenapi.Linter = (*Parser)(nil)

// Lint reports unknown or malformed x-formflow hints on every operation that
// has a form request body.
func (p *Parser) Lint(ctx context.Context, doc pkgopenapi.Document) ([]pkgopenapi.Violation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	spec, err := p.load(ctx, doc)
	if err != nil {
		return nil, err
	}

	paths := spec.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	var out []pkgopenapi.Violation
	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		ops := item.Operations()
		methods := make([]string, 0, len(ops))
		for method := range ops {
			methods = append(methods, method)
		}
		sort.Strings(methods)

		for _, method := range methods {
			op := ops[method]
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out = append(out, lintOperation(id, op)...)
		}
	}
	return out, nil
}

func lintOperation(id string, op *openapi3.Operation) []pkgopenapi.Violation {
	base := []string{"operation", id}
	out := lintHints(base, op.Extensions, map[string]func(any) string{
		extensionKind:        checkFormKind,
		extensionSubmitLabel: checkString,
	})

	schema := requestSchema(op.RequestBody)
	if schema == nil {
		return out
	}
	body := appendPath(base, "requestBody")
	out = append(out, lintHints(body, schema.Extensions, map[string]func(any) string{
		extensionOrder: checkOrder(schema),
	})...)

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		out = append(out, lintHints(appendPath(body, "properties."+name), ref.Value.Extensions, map[string]func(any) string{
			extensionKind:        checkFieldKind,
			extensionPlaceholder: checkString,
		})...)
	}
	return out
}

func lintHints(path []string, extensions map[string]any, allowed map[string]func(any) string) []pkgopenapi.Violation {
	keys := make([]string, 0, len(extensions))
	for key := range extensions {
		if strings.HasPrefix(key, extensionPrefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var out []pkgopenapi.Violation
	for _, key := range keys {
		check, ok := allowed[key]
		if !ok {
			supported := make([]string, 0, len(allowed))
			for name := range allowed {
				supported = append(supported, name)
			}
			sort.Strings(supported)
			out = append(out, pkgopenapi.Violation{
				Location: formatLocation(path),
				Message:  fmt.Sprintf("unsupported hint %q here (supported: %s)", key, strings.Join(supported, ", ")),
			})
			continue
		}
		if msg := check(extensions[key]); msg != "" {
			out = append(out, pkgopenapi.Violation{
				Location: formatLocation(path),
				Message:  key + ": " + msg,
			})
		}
	}
	return out
}

func checkString(value any) string {
	if _, ok := value.(string); !ok {
		return fmt.Sprintf("must be a string (got %T)", value)
	}
	return ""
}

func checkFormKind(value any) string {
	raw, ok := value.(string)
	if !ok {
		return fmt.Sprintf("must be a string (got %T)", value)
	}
	switch model.FormKind(strings.ToLower(strings.TrimSpace(raw))) {
	case model.FormKindContact, model.FormKindNewsletter:
		return ""
	}
	return fmt.Sprintf("unknown form kind %q", raw)
}

func checkFieldKind(value any) string {
	raw, ok := value.(string)
	if !ok {
		return fmt.Sprintf("must be a string (got %T)", value)
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "text", "email", "tel", "phone", "longtext", "textarea", "multiline":
		return ""
	}
	return fmt.Sprintf("unknown field kind %q", raw)
}

func checkOrder(schema *openapi3.Schema) func(any) string {
	return func(value any) string {
		list, ok := value.([]any)
		if !ok {
			return fmt.Sprintf("must be a list of property names (got %T)", value)
		}
		var unknown []string
		for _, entry := range list {
			name, ok := entry.(string)
			if !ok {
				return fmt.Sprintf("entries must be strings (got %T)", entry)
			}
			if _, exists := schema.Properties[name]; !exists {
				unknown = append(unknown, name)
			}
		}
		if len(unknown) > 0 {
			return "unknown properties " + strings.Join(unknown, ", ")
		}
		return ""
	}
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
