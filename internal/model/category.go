package model

import "sort"

// Category is a user-defined label. Tasks refer to it by Name, not by ID.
type Category struct {
	ID   string
	Name string
	Icon string // tag from Icons
}

// Icons maps the known icon tags to the glyph rendered next to a category
var Icons = map[string]string{
	"briefcase": "💼",
	"school":    "🎓",
	"user":      "👤",
	"home":      "🏠",
	"cart":      "🛒",
	"heart":     "❤",
	"book":      "📖",
	"star":      "⭐",
	"code":      "⌨",
	"money":     "💰",
}

// IsKnownIcon reports whether tag resolves to a glyph
func IsKnownIcon(tag string) bool {
	_, ok := Icons[tag]
	return ok
}

// Glyph returns the glyph for an icon tag, or "" when the tag is unknown
func Glyph(tag string) string {
	return Icons[tag]
}

// IconTags returns the known icon tags in sorted order
func IconTags() []string {
	tags := make([]string, 0, len(Icons))
	for tag := range Icons {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Label returns the category name prefixed with its glyph, if any
func (c *Category) Label() string {
	if g := Glyph(c.Icon); g != "" {
		return g + " " + c.Name
	}
	return c.Name
}
