package model

import "slices"

// DefaultCategories is the category vocabulary used when neither the store
// nor the configuration provides one.
var DefaultCategories = []string{
	"Работа",
	"Здоровье",
	"Образование",
	"Путешествия",
	"Дом",
	"Другое",
}

// Snapshot is the full persisted state of a goal collection.
type Snapshot struct {
	// Categories is nil when the store holds no category list.
	Categories []string
	Goals      []Goal
}

// HasCategory reports whether name is one of categories.
func HasCategory(categories []string, name string) bool {
	return slices.Contains(categories, name)
}
