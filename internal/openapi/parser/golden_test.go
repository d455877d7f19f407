package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
	"github.com/goliatone/go-formflow/pkg/testsupport"
)

// The golden file is produced by scripts/generate-form-model.
func TestContactFormMatchesSnapshot(t *testing.T) {
	doc := testsupport.LoadDocument(t, "testdata/landing.yaml")
	forms, err := parser.New(pkgopenapi.NewParserOptions()).Forms(testsupport.Context(), doc)
	if err != nil {
		t.Fatalf("forms: %v", err)
	}

	want := testsupport.MustLoadFormModel(t, "testdata/submitContact.golden.json")
	if diff := cmp.Diff(want, forms["submitContact"]); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}
