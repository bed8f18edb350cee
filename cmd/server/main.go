package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gyaneshwarpardhi/blueprint/internal/api"
	"github.com/gyaneshwarpardhi/blueprint/internal/codegen"
	"github.com/gyaneshwarpardhi/blueprint/internal/config"
	"github.com/gyaneshwarpardhi/blueprint/internal/factory"
	"github.com/gyaneshwarpardhi/blueprint/internal/serialize"
	"github.com/gyaneshwarpardhi/blueprint/internal/service"
)

func main() {
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	cfgPath := flag.String("config", "configs/blueprint.yaml", "Path to YAML config")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	loader, err := config.NewLoader(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	cfg := loader.Config()
	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "err", err)
		os.Exit(1)
	}

	catalog := factory.DefaultCatalog()
	fac := factory.New(catalog)
	generators := codegen.DefaultRegistry()
	if _, err := generators.Get(cfg.Codegen.DefaultLanguage); err != nil {
		slog.Error("default language has no generator", "language", cfg.Codegen.DefaultLanguage)
		os.Exit(1)
	}
	compiler := service.NewCompiler(serialize.New(fac), generators)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jobs := service.NewQueue(ctx, compiler,
		cfg.Compile.Workers,
		cfg.Compile.QueueDepth,
		time.Duration(cfg.Compile.JobTimeoutMs)*time.Millisecond,
	)
	slog.Info("compile queue started",
		"workers", cfg.Compile.Workers, "depth", cfg.Compile.QueueDepth)

	loader.OnChange(func(newCfg *config.Config) {
		if err := config.Validate(newCfg); err != nil {
			slog.Warn("hot-reload skipped: config invalid", "err", err)
			return
		}
		slog.Info("config hot-reloaded",
			"default_language", newCfg.Codegen.DefaultLanguage,
			"max_document_bytes", newCfg.Codegen.MaxDocumentBytes)
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("config watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	listenAddr := cfg.Server.Addr
	if *addr != "" {
		listenAddr = *addr
	}
	handler := api.New(compiler, jobs, catalog, generators, loader)
	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutMs) * time.Millisecond,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutMs) * time.Millisecond,
	}

	go func() {
		slog.Info("server starting", "addr", listenAddr, "languages", generators.Languages())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
	cancel()
	jobs.Drain()
	slog.Info("goodbye")
}
