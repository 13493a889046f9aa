package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dori/tsuzuki/internal/model"
)

var (
	ErrEmptyName         = errors.New("category name is empty")
	ErrUnknownIcon       = errors.New("unknown icon tag")
	ErrDuplicateCategory = errors.New("category already exists")
)

// CategoryRegistry holds the append-only list of categories.
// There is deliberately no rename or remove: tasks reference categories by
// name, and the stored string on a task is the only link.
type CategoryRegistry struct {
	categories []model.Category
	newID      IDGen
}

// NewCategoryRegistry creates a registry starting with categories
func NewCategoryRegistry(categories []model.Category, idgen IDGen) *CategoryRegistry {
	if idgen == nil {
		idgen = DefaultIDGen
	}
	r := &CategoryRegistry{
		categories: make([]model.Category, len(categories)),
		newID:      idgen,
	}
	copy(r.categories, categories)
	return r
}

// Add registers a new category and returns it
func (r *CategoryRegistry) Add(name, icon string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, ErrEmptyName
	}
	icon = strings.ToLower(strings.TrimSpace(icon))
	if !model.IsKnownIcon(icon) {
		return model.Category{}, fmt.Errorf("%w: %q", ErrUnknownIcon, icon)
	}
	if _, ok := r.Lookup(name); ok {
		return model.Category{}, fmt.Errorf("%w: %s", ErrDuplicateCategory, name)
	}

	c := model.Category{
		ID:   r.newID(),
		Name: name,
		Icon: icon,
	}
	r.categories = append(r.categories, c)
	return c, nil
}

// List returns the categories in creation order
func (r *CategoryRegistry) List() []model.Category {
	out := make([]model.Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// Names returns the category names in creation order
func (r *CategoryRegistry) Names() []string {
	names := make([]string, len(r.categories))
	for i, c := range r.categories {
		names[i] = c.Name
	}
	return names
}

// Lookup finds a category by exact name
func (r *CategoryRegistry) Lookup(name string) (model.Category, bool) {
	for _, c := range r.categories {
		if c.Name == name {
			return c, true
		}
	}
	return model.Category{}, false
}
