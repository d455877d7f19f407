package validation

import (
	"testing"

	"github.com/goliatone/go-formflow/pkg/model"
)

func TestCatalog(t *testing.T) {
	en, err := Catalog("en-US")
	if err != nil || en.Required != English.Required {
		t.Fatalf("expected English catalog, got %+v (%v)", en, err)
	}
	he, err := Catalog("")
	if err != nil || he.Required != Hebrew.Required {
		t.Fatalf("expected Hebrew default, got %+v (%v)", he, err)
	}
	if _, err := Catalog("fr"); err == nil {
		t.Fatalf("expected error for unknown locale")
	}
}

func TestMessagesFallBackToDefault(t *testing.T) {
	partial := &Messages{Required: "needed"}
	if got := partial.For(model.CodeRequired); got != "needed" {
		t.Fatalf("override ignored: %q", got)
	}
	if got := partial.For(model.CodeInvalidPhone); got != Default.InvalidPhone {
		t.Fatalf("expected default phone message, got %q", got)
	}
	var nilCatalog *Messages
	if got := nilCatalog.For(model.CodeInvalidEmail); got != Default.InvalidEmail {
		t.Fatalf("nil catalog should use default, got %q", got)
	}
}

func TestMerge(t *testing.T) {
	merged := Messages{InvalidEmail: "bad email"}.Merge(English)
	if merged.InvalidEmail != "bad email" || merged.Required != English.Required {
		t.Fatalf("unexpected merge result %+v", merged)
	}
}
