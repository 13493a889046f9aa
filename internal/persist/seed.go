package persist

import (
	"time"

	"github.com/dori/tsuzuki/internal/model"
	"github.com/dori/tsuzuki/internal/store"
)

// SeedVersion identifies the built-in default dataset. Bump it whenever
// the seed lists below change.
const SeedVersion = 1

// Seed category names. Seed tasks refer to these.
const (
	CategoryWork     = "Work"
	CategorySchool   = "School"
	CategoryPersonal = "Personal"
)

// SeedCategories returns the three default categories with fresh ids
func SeedCategories(newID store.IDGen) []model.Category {
	if newID == nil {
		newID = store.DefaultIDGen
	}
	return []model.Category{
		{ID: newID(), Name: CategoryWork, Icon: "briefcase"},
		{ID: newID(), Name: CategorySchool, Icon: "school"},
		{ID: newID(), Name: CategoryPersonal, Icon: "user"},
	}
}

// SeedTasks returns the example tasks shown when nothing has been stored yet
func SeedTasks(newID store.IDGen) []model.Task {
	if newID == nil {
		newID = store.DefaultIDGen
	}
	homework := time.Date(2024, time.November, 2, 17, 30, 0, 0, time.Local)
	cleaning := time.Date(2024, time.November, 11, 0, 0, 0, 0, time.Local)

	return []model.Task{
		{
			ID:       newID(),
			Name:     "Calculus II assignment",
			Priority: model.PriorityMedium,
			Deadline: &homework,
			Category: CategorySchool,
		},
		{
			ID:       newID(),
			Name:     "Study TypeScript (review)",
			IsDone:   true,
			Priority: model.PriorityLow,
			Category: CategorySchool,
		},
		{
			ID:       newID(),
			Name:     "Clean my room",
			IsDone:   true,
			Priority: model.PriorityMedium,
			Deadline: &cleaning,
			Category: CategoryPersonal,
		},
		{
			ID:       newID(),
			Name:     "Submit shift schedule",
			Priority: model.PriorityHigh,
			Category: CategoryWork,
		},
	}
}
