package core

import "strings"

// Category is the classification bucket for a change record, derived
// from the conventional-commit style prefix of its title.
type Category int

const (
	CategoryFeat Category = iota
	CategoryFix
	CategoryDocs
	CategoryTest
	CategoryCI
	CategoryCD
	CategoryTask
	CategoryChore
	CategoryOther
)

// String returns the prefix form of the category.
func (c Category) String() string {
	switch c {
	case CategoryFeat:
		return "feat"
	case CategoryFix:
		return "fix"
	case CategoryDocs:
		return "docs"
	case CategoryTest:
		return "test"
	case CategoryCI:
		return "ci"
	case CategoryCD:
		return "cd"
	case CategoryTask:
		return "task"
	case CategoryChore:
		return "chore"
	default:
		return "other"
	}
}

var categoryByPrefix = map[string]Category{
	"feat":  CategoryFeat,
	"fix":   CategoryFix,
	"docs":  CategoryDocs,
	"test":  CategoryTest,
	"ci":    CategoryCI,
	"cd":    CategoryCD,
	"task":  CategoryTask,
	"chore": CategoryChore,
}

// Classify maps a change title to its category. The declared type is the
// substring before the first colon, lowercased and trimmed, matched
// exactly against the known prefixes. Titles without a colon, or with an
// unrecognized prefix, classify as CategoryOther. Total: never fails.
func Classify(title string) Category {
	prefix, _, found := strings.Cut(title, ":")
	if !found {
		return CategoryOther
	}
	if c, ok := categoryByPrefix[strings.ToLower(strings.TrimSpace(prefix))]; ok {
		return c
	}
	return CategoryOther
}

// CleanTitle strips a recognized type prefix from a title. Titles that
// classify as other are returned trimmed but otherwise untouched, so a
// stray colon in free text is not mangled. A title that is nothing but
// a prefix keeps its original form rather than cleaning to nothing.
func CleanTitle(title string) string {
	trimmed := strings.TrimSpace(title)
	if Classify(title) == CategoryOther {
		return trimmed
	}
	_, rest, _ := strings.Cut(title, ":")
	if cleaned := strings.TrimSpace(rest); cleaned != "" {
		return cleaned
	}
	return trimmed
}
