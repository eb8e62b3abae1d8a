package cmd

import (
	"context"
	"fmt"

	bk "github.com/hanksha/pitch-booking-bot/booking"
	"github.com/hanksha/pitch-booking-bot/config"
	"github.com/hanksha/pitch-booking-bot/sheets"
)

// openStore connects the configured backend and prepares its tables.
func openStore(ctx context.Context, cfg config.StoreConfig) (bk.Store, error) {
	var store bk.Store
	var err error

	switch cfg.Backend {
	case config.BackendPostgres:
		store, err = bk.Connect(ctx, cfg.DatabaseURL)
	case config.BackendSheets:
		store, err = sheets.Open(ctx, cfg.CredentialsFile, cfg.SheetID)
	case config.BackendSQLite:
		store, err = bk.OpenSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("%w: unknown STORE_BACKEND %q", config.ErrInvalidConfig, cfg.Backend)
	}

	if err != nil {
		return nil, err
	}

	if err := store.Init(ctx); err != nil {
		store.Close()
		return nil, err
	}

	return store, nil
}
