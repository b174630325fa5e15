package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstock/inventory/config"
	"github.com/labstock/inventory/internal/infrastructure/sqlite"
	"github.com/labstock/inventory/internal/usecase"
)

type commandContext struct {
	dbFlag    *string
	debugFlag *bool
}

func newCommandContext(dbFlag *string, debugFlag *bool) *commandContext {
	return &commandContext{
		dbFlag:    dbFlag,
		debugFlag: debugFlag,
	}
}

func (c *commandContext) debug() bool {
	return c.debugFlag != nil && *c.debugFlag
}

// settings returns the configured detection settings and database path.
// --db wins over the configured path.
func (c *commandContext) settings() (*config.Config, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	path := cfg.Storage.Path
	if c.dbFlag != nil && strings.TrimSpace(*c.dbFlag) != "" {
		path = strings.TrimSpace(*c.dbFlag)
	}
	return cfg, path, nil
}

func (c *commandContext) withStore(ctx context.Context, fn func(*config.Config, *sqlite.Store) error) error {
	cfg, path, err := c.settings()
	if err != nil {
		return err
	}
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return fmt.Errorf("open inventory %s: %w", path, err)
	}
	defer store.Close()
	return fn(cfg, store)
}

func (c *commandContext) withService(ctx context.Context, fn func(*usecase.InventoryService) error) error {
	return c.withStore(ctx, func(cfg *config.Config, store *sqlite.Store) error {
		service := usecase.NewInventoryService(store, store, nil, usecase.InventoryServiceConfig{
			SimilarityThreshold: &cfg.Detection.Threshold,
			SuggestionLimit:     cfg.Suggestions.Limit,
			EnableDebugLogging:  c.debug() || cfg.Detection.DebugLogging,
		})
		return fn(service)
	})
}
