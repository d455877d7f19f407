package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/internal/logging"
	"github.com/goliatone/go-formflow/pkg/config"
	"github.com/goliatone/go-formflow/pkg/model"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
	"github.com/goliatone/go-formflow/pkg/server"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}

	logger, err := logging.New(env.LogLevel, logging.Format(env.LogFormat))
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(env.ConfigPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []server.Option{
		server.WithConfig(cfg),
		server.WithAddr(env.Addr),
		server.WithLogger(logger),
		server.WithTitle(env.Title),
		server.WithAllowedOrigins(env.Origins()...),
	}
	if env.FormsSource != "" {
		extra, err := loadExtraForms(ctx, env.FormsSource, cfg)
		if err != nil {
			logger.Fatal("load forms", zap.String("source", env.FormsSource), zap.Error(err))
		}
		logger.Info("serving extra forms", zap.Strings("ids", formIDs(extra)))
		opts = append(opts, server.WithForms(extra...))
	}

	srv, err := server.New(opts...)
	if err != nil {
		logger.Fatal("build server", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			logger.Error("shutdown", zap.Error(err))
		}
	}
}

func loadExtraForms(ctx context.Context, raw string, cfg config.Config) ([]model.FormModel, error) {
	src, err := pkgopenapi.ParseSource(raw)
	if err != nil {
		return nil, err
	}
	forms, err := formflow.LoadForms(ctx, src, []pkgopenapi.LoaderOption{pkgopenapi.WithHTTPFallback(30*time.Second)})
	if err != nil {
		return nil, err
	}
	out := make([]model.FormModel, 0, len(forms))
	for _, id := range formflow.SortedIDs(forms) {
		form := forms[id]
		if err := model.Apply(&form, cfg.Decorator()); err != nil {
			return nil, err
		}
		out = append(out, form)
	}
	return out, nil
}

func formIDs(forms []model.FormModel) []string {
	ids := make([]string, 0, len(forms))
	for _, f := range forms {
		ids = append(ids, f.ID)
	}
	return ids
}
