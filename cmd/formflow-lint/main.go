package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-formflow"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint OpenAPI documents for unsupported x-formflow hints.\n")
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"testdata/landing.yaml"}
	}

	ctx := context.Background()
	linter := formflow.NewLinter(pkgopenapi.WithDocumentValidation(false))

	failed := false
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations, err := linter.Lint(ctx, doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		for _, v := range violations {
			failed = true
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", path, v.Location, v.Message)
		}
	}
	if failed {
		os.Exit(1)
	}
}
