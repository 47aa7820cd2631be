package model

import "fmt"

// SettingsID is the fixed key of the singleton settings record.
const SettingsID = "settings"

// WeekStart is the first day of a week: Sunday (0) or Monday (1).
type WeekStart int

const (
	// WeekStartsSunday begins weeks on Sunday.
	WeekStartsSunday WeekStart = 0
	// WeekStartsMonday begins weeks on Monday.
	WeekStartsMonday WeekStart = 1
)

// Theme is the display theme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// IsValid reports whether t is one of the known themes.
func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// Settings holds per-device preferences.
type Settings struct {
	ID           string
	Theme        Theme
	WeekStartsOn WeekStart
}

// DefaultSettings returns the settings written on first read.
func DefaultSettings() Settings {
	return Settings{
		ID:           SettingsID,
		WeekStartsOn: WeekStartsSunday,
		Theme:        ThemeSystem,
	}
}

// SettingsPatch describes a shallow update of the settings record.
type SettingsPatch struct {
	WeekStartsOn *WeekStart
	Theme        *Theme
}

// Apply merges the patch onto s.
func (p SettingsPatch) Apply(s *Settings) {
	if p.WeekStartsOn != nil {
		s.WeekStartsOn = *p.WeekStartsOn
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
}

func (w WeekStart) String() string {
	switch w {
	case WeekStartsSunday:
		return "sunday"
	case WeekStartsMonday:
		return "monday"
	default:
		return fmt.Sprintf("WeekStart(%d)", int(w))
	}
}
