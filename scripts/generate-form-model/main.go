package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/goliatone/go-formflow"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
)

func main() {
	var (
		sourcePath  = flag.String("source", "testdata/landing.yaml", "OpenAPI document path")
		operationID = flag.String("operation", "submitContact", "operation ID to snapshot")
		outputPath  = flag.String("output", "internal/openapi/parser/testdata/submitContact.golden.json", "output path for the serialized form model")
	)
	flag.Parse()

	form, err := formflow.LoadForm(context.Background(), pkgopenapi.SourceFromFile(*sourcePath), *operationID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load form model: %v\n", err)
		os.Exit(1)
	}

	payload, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode form model: %v\n", err)
		os.Exit(1)
	}
	payload = append(payload, '\n')
	if err := os.WriteFile(*outputPath, payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write snapshot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Form model written to %s\n", *outputPath)
}
