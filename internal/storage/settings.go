package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// GetSettings returns the settings record, writing the defaults on first use.
func (s *SQLiteStorage) GetSettings(ctx context.Context) (*model.Settings, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var settings *model.Settings
	err := s.withTx(ctx, func(q querier) error {
		var err error
		settings, err = loadSettings(ctx, q)
		return err
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateSettings shallow-merges patch onto the stored settings.
func (s *SQLiteStorage) UpdateSettings(ctx context.Context, patch model.SettingsPatch) (*model.Settings, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var settings *model.Settings
	err := s.withTx(ctx, func(q querier) error {
		current, err := loadSettings(ctx, q)
		if err != nil {
			return err
		}

		patch.Apply(current)
		if err := saveSettings(ctx, q, current); err != nil {
			return err
		}
		settings = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("updated settings", "week_starts_on", settings.WeekStartsOn.String(), "theme", string(settings.Theme))
	return settings, nil
}

func loadSettings(ctx context.Context, q querier) (*model.Settings, error) {
	var settings model.Settings
	var theme string
	var weekStart int
	err := q.QueryRowContext(ctx,
		"SELECT id, week_starts_on, theme FROM settings WHERE id = ?", model.SettingsID,
	).Scan(&settings.ID, &weekStart, &theme)

	if errors.Is(err, sql.ErrNoRows) {
		defaults := model.DefaultSettings()
		if err := saveSettings(ctx, q, &defaults); err != nil {
			return nil, err
		}
		slog.Info("initialized default settings")
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}

	settings.WeekStartsOn = model.WeekStart(weekStart)
	settings.Theme = model.Theme(theme)
	return &settings, nil
}

func saveSettings(ctx context.Context, q querier, settings *model.Settings) error {
	if _, err := q.ExecContext(ctx, `
		INSERT INTO settings (id, week_starts_on, theme) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET week_starts_on = excluded.week_starts_on, theme = excluded.theme`,
		settings.ID, int(settings.WeekStartsOn), string(settings.Theme),
	); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
