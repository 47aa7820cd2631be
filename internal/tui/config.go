package tui

import (
	"time"

	"github.com/Veraticus/pocket-ledger/internal/service"
	"github.com/Veraticus/pocket-ledger/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Month    time.Time
	Theme    *themes.Theme // nil follows the stored theme setting
	Storage  service.Storage
	Now      func() time.Time
	Width    int
	Height   int
	ShowHelp bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Now:      time.Now,
		Width:    80,
		Height:   24,
		ShowHelp: true,
	}
}

// WithStorage sets the storage service.
func WithStorage(storage service.Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

// WithTheme overrides the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = &theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithMonth opens the calendar on the month containing t.
func WithMonth(t time.Time) Option {
	return func(c *Config) {
		c.Month = t
	}
}

// WithClock replaces the clock used to find today.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}
