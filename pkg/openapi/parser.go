package openapi

import (
	"context"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Parser turns a document into form models keyed by operation id.
type Parser interface {
	Forms(ctx context.Context, doc Document) (map[string]model.FormModel, error)
}

// ParserOptions toggles parser behaviour.
type ParserOptions struct {
	// ValidateDocument runs kin-openapi's document validation before
	// extracting forms.
	ValidateDocument bool
	// SkipEmpty drops operations without a usable request body instead of
	// failing the whole document.
	SkipEmpty bool
}

// ParserOption mutates ParserOptions.
type ParserOption func(*ParserOptions)

// WithDocumentValidation toggles document validation.
func WithDocumentValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ValidateDocument = enabled
	}
}

// WithSkipEmpty toggles skipping operations that have no form fields.
func WithSkipEmpty(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.SkipEmpty = enabled
	}
}

// NewParserOptions applies options over the defaults (validate, skip empty).
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{ValidateDocument: true, SkipEmpty: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
