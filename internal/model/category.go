package model

import "strings"

// Category groups expenses under a user-defined name and color.
type Category struct {
	ID         string
	Name       string
	Color      string // Hex color, e.g. "#ef4444"
	UsageCount int
}

// NewCategory holds the user-supplied fields for creating a category.
type NewCategory struct {
	Name  string
	Color string
}

// CategoryPatch describes a partial update; nil fields are left untouched.
type CategoryPatch struct {
	Name  *string
	Color *string
}

// Apply merges the patch onto c. Names are trimmed; an empty result is kept.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
}
