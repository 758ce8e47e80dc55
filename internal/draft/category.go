package draft

import (
	"fmt"
	"strings"
)

const (
	SetConversational = "conversational"
	SetOneShot        = "oneshot"
)

// CategorySet is one named category vocabulary. Labels outside the set are mapped through
// aliases, and anything still unknown resolves to Default.
type CategorySet struct {
	Name    string
	Members []Category
	Default Category
	aliases map[Category]Category
}

// Conversational is the vocabulary used by the dialogue flow.
var Conversational = CategorySet{
	Name:    SetConversational,
	Members: []Category{CategoryWork, CategoryPersonal, CategoryHealth, CategoryStudy, CategoryShopping, CategoryOther},
	Default: CategoryOther,
	aliases: map[Category]Category{
		CategoryLife:    CategoryPersonal,
		CategorySocial:  CategoryPersonal,
		CategoryFinance: CategoryOther,
	},
}

// OneShot is the vocabulary used by the single-shot parse endpoint.
var OneShot = CategorySet{
	Name:    SetOneShot,
	Members: []Category{CategoryWork, CategoryLife, CategoryStudy, CategoryHealth, CategoryFinance, CategorySocial},
	Default: CategoryLife,
	aliases: map[Category]Category{
		CategoryPersonal: CategoryLife,
		CategoryShopping: CategoryLife,
		CategoryOther:    CategoryLife,
	},
}

// LookupCategorySet returns the set registered under name. An empty name selects Conversational.
func LookupCategorySet(name string) (CategorySet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SetConversational:
		return Conversational, nil
	case SetOneShot:
		return OneShot, nil
	}
	return CategorySet{}, fmt.Errorf("%w: %q", ErrUnknownCategorySet, name)
}

// Contains reports whether c is a member of the set.
func (s CategorySet) Contains(c Category) bool {
	for _, m := range s.Members {
		if m == c {
			return true
		}
	}
	return false
}

// Resolve maps any label onto a member of the set.
func (s CategorySet) Resolve(label string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(label)))
	if s.Contains(c) {
		return c
	}
	if alias, ok := s.aliases[c]; ok {
		return alias
	}
	return s.Default
}

// Labels returns the members joined by "|" for prompt text.
func (s CategorySet) Labels() string {
	parts := make([]string, len(s.Members))
	for i, m := range s.Members {
		parts[i] = string(m)
	}
	return strings.Join(parts, "|")
}
