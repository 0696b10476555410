package cmd

import (
	"context"
	"fmt"

	"github.com/domaingen/domaingen/internal/config"
	"github.com/domaingen/domaingen/internal/core/store"
	errwrap "github.com/domaingen/domaingen/internal/errors"
)

// openStore opens and migrates the configured item store. Callers close it.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	db, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// loadConfig reports decode and validation failures as CONFIG_INVALID so the
// process exits with the config exit code.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errwrap.WrapConfigInvalid(context.Background(), err, "invalid configuration: "+err.Error())
	}
	return cfg, nil
}
