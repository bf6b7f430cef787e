package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/piggy/internal/cli"
	"github.com/Veraticus/piggy/internal/common"
	"github.com/Veraticus/piggy/internal/config"
	"github.com/Veraticus/piggy/internal/goals"
	"github.com/Veraticus/piggy/internal/storage"
)

// openManager opens the configured goal store and loads it. The returned
// function closes the store. A malformed store is reported on warn and the
// manager starts empty.
func openManager(ctx context.Context, warn io.Writer) (*goals.Manager, func(), error) {
	cfg, err := config.LoadStorageConfig()
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.Open(ctx, cfg.Backend, cfg.Path)
	if err != nil {
		return nil, nil, err
	}
	closeStore := func() { _ = store.Close() }

	mgr, err := goals.NewManager(ctx, store, goals.WithCategories(cfg.Categories))
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	if loadErr := mgr.LoadError(); loadErr != nil {
		fmt.Fprintln(warn, cli.FormatWarning(fmt.Sprintf(
			"Goal store %s could not be read (%v); starting with no goals.", store.Location(), loadErr)))
	}
	return mgr, closeStore, nil
}

// parseAmount accepts both "12.50" and "12,50".
func parseAmount(text string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(text), ",", "."), 64)
	if err != nil {
		return 0, common.NewUserError(fmt.Sprintf("%q is not a number", text), common.ErrInvalidAmount)
	}
	return amount, nil
}
