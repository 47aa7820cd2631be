package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pocket-ledger/internal/common"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("LEDGER_TEST_DIR", "/srv/data")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/ledger.db", want: filepath.Join(home, "ledger.db")},
		{in: "$LEDGER_TEST_DIR/ledger.db", want: "/srv/data/ledger.db"},
		{in: "/abs/path.db", want: "/abs/path.db"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestDirsHonourXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	assert.Equal(t, "/xdg/config/ledger", ConfigDir())
	assert.Equal(t, "/xdg/data/ledger", DataDir())
	assert.Equal(t, "/xdg/data/ledger/ledger.db", DefaultDatabasePath())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/xdg/data/ledger/ledger.db", cfg.DatabasePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 5, cfg.KeepAutoCheckpoints)
	assert.True(t, cfg.AutoCheckpointImport)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LEDGER_DATABASE_PATH", "/tmp/other.db")
	t.Setenv("LEDGER_CHECKPOINTS_KEEP_AUTO", "9")
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.DatabasePath)
	assert.Equal(t, 9, cfg.KeepAutoCheckpoints)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		set     map[string]any
		wantErr error
		name    string
	}{
		{name: "empty database path", set: map[string]any{KeyDatabasePath: ""}, wantErr: common.ErrMissingConfig},
		{name: "keep below one", set: map[string]any{KeyCheckpointsKeep: 0}, wantErr: common.ErrInvalidConfig},
		{name: "unknown format", set: map[string]any{KeyLogFormat: "xml"}, wantErr: common.ErrInvalidConfig},
		{name: "unknown level", set: map[string]any{KeyLogLevel: "loud"}, wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			for k, val := range tt.set {
				v.Set(k, val)
			}

			_, err := Load(v)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
