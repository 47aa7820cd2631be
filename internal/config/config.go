package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/pocket-ledger/internal/common"
)

// Config keys shared with command-line flag bindings.
const (
	KeyDatabasePath    = "database.path"
	KeyLogLevel        = "logging.level"
	KeyLogFormat       = "logging.format"
	KeyCheckpointsKeep = "checkpoints.keep_auto"
	KeyImportAutoCP    = "import.auto_checkpoint"
)

// EnvPrefix namespaces environment overrides, e.g. LEDGER_DATABASE_PATH.
const EnvPrefix = "LEDGER"

// Config is the resolved application configuration.
type Config struct {
	DatabasePath         string
	LogLevel             string
	LogFormat            string
	KeepAutoCheckpoints  int
	AutoCheckpointImport bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath())
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyCheckpointsKeep, 5)
	v.SetDefault(KeyImportAutoCP, true)
}

// BindEnv makes every key overridable through LEDGER_* variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration out of v after defaults are applied.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabasePath:         ExpandPath(v.GetString(KeyDatabasePath)),
		LogLevel:             v.GetString(KeyLogLevel),
		LogFormat:            v.GetString(KeyLogFormat),
		KeepAutoCheckpoints:  v.GetInt(KeyCheckpointsKeep),
		AutoCheckpointImport: v.GetBool(KeyImportAutoCP),
	}

	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("%w: %s is empty", common.ErrMissingConfig, KeyDatabasePath)
	}
	if cfg.KeepAutoCheckpoints < 1 {
		return nil, fmt.Errorf("%w: %s must be at least 1", common.ErrInvalidConfig, KeyCheckpointsKeep)
	}
	switch cfg.LogFormat {
	case "console", "json":
	default:
		return nil, fmt.Errorf("%w: %s must be console or json", common.ErrInvalidConfig, KeyLogFormat)
	}
	if _, err := common.ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	return cfg, nil
}
