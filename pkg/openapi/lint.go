package openapi

import "context"

// Violation is one problem found in a document's x-formflow hints.
type Violation struct {
	Location string
	Message  string
}

// Linter checks x-formflow hints without building forms.
type Linter interface {
	Lint(ctx context.Context, doc Document) ([]Violation, error)
}
