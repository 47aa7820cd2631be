package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/dates"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

// openStorage opens the configured database and brings its schema up to date.
func (a *app) openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(a.cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// withStorage runs fn against an open store and closes it afterwards.
func (a *app) withStorage(cmd *cobra.Command, fn func(ctx context.Context, store *storage.SQLiteStorage) error) error {
	ctx := cmd.Context()
	store, err := a.openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("Failed to close database", "error", closeErr)
		}
	}()
	return fn(ctx, store)
}

// checkpointManager returns a manager honoring the configured retention.
func (a *app) checkpointManager(store *storage.SQLiteStorage) (*storage.CheckpointManager, error) {
	manager, err := store.NewCheckpointManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create checkpoint manager: %w", err)
	}
	manager.SetKeepAuto(a.cfg.KeepAutoCheckpoints)
	return manager, nil
}

// dateFlag reads an optional YYYY-MM-DD flag, falling back to today.
func dateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return dates.Today(), nil
	}
	t, err := dates.ParseDateFromISO(raw)
	if err != nil {
		return time.Time{}, common.NewUserError(fmt.Sprintf("--%s must be a date as YYYY-MM-DD", name), err)
	}
	return t, nil
}

// isoFlag validates an optional YYYY-MM-DD flag and returns it unchanged.
func isoFlag(cmd *cobra.Command, name string) (string, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return "", nil
	}
	if _, err := dates.ParseDateFromISO(raw); err != nil {
		return "", common.NewUserError(fmt.Sprintf("--%s must be a date as YYYY-MM-DD", name), err)
	}
	return raw, nil
}

func writeln(w io.Writer, a ...any) {
	if _, err := fmt.Fprintln(w, a...); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}

func formatFileSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}

func formatRelativeTime(t time.Time) string {
	if time.Since(t) >= 7*24*time.Hour {
		return t.Format("2006-01-02 15:04")
	}
	return humanize.Time(t)
}
