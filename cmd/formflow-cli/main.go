package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/internal/logging"
	"github.com/goliatone/go-formflow/pkg/config"
	"github.com/goliatone/go-formflow/pkg/model"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
	"github.com/goliatone/go-formflow/pkg/terminal"
	"github.com/goliatone/go-formflow/pkg/validation"
)

func main() {
	kind := flag.String("form", "contact", "form to fill: contact or newsletter")
	configPath := flag.String("config", "", "YAML configuration file")
	source := flag.String("source", "", "OpenAPI document path or URL with form definitions")
	operation := flag.String("operation", "", "operation ID to fill when -source is set")
	locale := flag.String("locale", "", "message locale: he or en (overrides the config file)")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	logger, err := logging.New(*logLevel, logging.FormatConsole)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *locale != "" {
		messages, err := validation.Catalog(*locale)
		if err != nil {
			log.Fatalf("Invalid locale: %v", err)
		}
		cfg.Locale = *locale
		cfg.Messages = messages
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	form, err := resolveForm(ctx, *kind, *source, *operation)
	if err != nil {
		log.Fatalf("Failed to resolve form: %v", err)
	}
	if err := model.Apply(&form, cfg.Decorator()); err != nil {
		log.Fatalf("Failed to apply config: %v", err)
	}

	session := terminal.NewSession(form,
		terminal.WithLogger(logger),
		terminal.WithControllerOptions(cfg.ControllerOptions(form.Kind)...),
	)
	result, err := session.Run(ctx)
	switch {
	case errors.Is(err, terminal.ErrAborted), errors.Is(err, context.Canceled):
		fmt.Println("aborted")
		os.Exit(130)
	case err != nil:
		log.Fatalf("Form session failed: %v", err)
	}
	if !result.Submitted {
		os.Exit(1)
	}
}

func resolveForm(ctx context.Context, kind, source, operation string) (model.FormModel, error) {
	if strings.TrimSpace(source) == "" {
		return formflow.BuiltinForm(model.FormKind(strings.ToLower(kind)))
	}
	src, err := pkgopenapi.ParseSource(source)
	if err != nil {
		return model.FormModel{}, err
	}
	if operation == "" {
		return model.FormModel{}, errors.New("-operation is required with -source")
	}
	return formflow.LoadForm(ctx, src, operation, pkgopenapi.WithHTTPFallback(30*time.Second))
}
