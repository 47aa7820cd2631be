package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

func TestGetSettings_Bootstrap(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	settings, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), *settings)

	_, err = store.GetSettings(ctx)
	require.NoError(t, err)

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM settings").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUpdateSettings(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	monday := model.WeekStartsMonday
	updated, err := store.UpdateSettings(ctx, model.SettingsPatch{WeekStartsOn: &monday})
	require.NoError(t, err)
	assert.Equal(t, model.WeekStartsMonday, updated.WeekStartsOn)
	assert.Equal(t, model.ThemeSystem, updated.Theme)

	dark := model.ThemeDark
	updated, err = store.UpdateSettings(ctx, model.SettingsPatch{Theme: &dark})
	require.NoError(t, err)
	assert.Equal(t, model.WeekStartsMonday, updated.WeekStartsOn)
	assert.Equal(t, model.ThemeDark, updated.Theme)

	stored, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
	assert.Equal(t, model.SettingsID, stored.ID)
}
