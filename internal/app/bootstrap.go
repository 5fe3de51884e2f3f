package app

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"lughat.dev/lughat/internal/cli"
	"lughat.dev/lughat/internal/config"
	"lughat.dev/lughat/internal/history"
	"lughat.dev/lughat/internal/httpapi"
	"lughat.dev/lughat/internal/logging"
	"lughat.dev/lughat/internal/render"
	"lughat.dev/lughat/internal/translate"
)

// bootstrap wires the pieces every command needs: env file, config,
// logger and the service facade over store + providers + renderers.
func bootstrap(envLoader *cli.EnvLoader) (*config.Config, zerolog.Logger, *httpapi.Service, error) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("initialize logger: %w", err)
	}

	store := history.Open(cfg.HistoryFile, time.Duration(cfg.HistoryTTLHours)*time.Hour)
	registry := translate.NewRegistryFromConfig(cfg)
	svc := httpapi.NewService(store, registry, render.NewPDFRenderer(cfg.FontPath), logger)

	return cfg, logger, svc, nil
}
