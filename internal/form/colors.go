package form

import "strings"

// Preset is a named category color offered by the category form.
type Preset struct {
	Name string
	Hex  string
}

// Presets are the colors offered when creating a category. The first one is
// the default.
var Presets = []Preset{
	{"Red", "#ef4444"},
	{"Orange", "#f97316"},
	{"Yellow", "#eab308"},
	{"Green", "#22c55e"},
	{"Blue", "#3b82f6"},
	{"Purple", "#8b5cf6"},
	{"Pink", "#ec4899"},
	{"Gray", "#6b7280"},
	{"Rose", "#f43f5e"},
	{"Teal", "#14b8a6"},
	{"Cyan", "#06b6d4"},
	{"Sky", "#0ea5e9"},
	{"Indigo", "#6366f1"},
	{"Violet", "#a855f7"},
	{"Fuchsia", "#d946ef"},
	{"Lime", "#84cc16"},
	{"Emerald", "#10b981"},
	{"Amber", "#f59e0b"},
	{"Stone", "#78716c"},
	{"Zinc", "#71717a"},
}

// DefaultColor is used when a category is created without a color.
var DefaultColor = Presets[0].Hex

var presetByName = func() map[string]string {
	m := make(map[string]string, len(Presets))
	for _, p := range Presets {
		m[strings.ToLower(p.Name)] = p.Hex
	}
	return m
}()
