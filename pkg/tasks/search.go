package tasks

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// ErrNoSearch means no saved search matched a name or id.
var ErrNoSearch = errors.New("tasks: no such saved search")

// SavedSearch is a named filter preset for the task list.
type SavedSearch struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Filter    Filter    `json:"filter" yaml:"filter"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Searches is the persisted list of saved searches.
type Searches []SavedSearch

// Lookup finds a search by id or, failing that, by case-insensitive name.
func (s Searches) Lookup(ref string) (SavedSearch, bool) {
	ref = strings.TrimSpace(ref)
	for _, v := range s {
		if v.ID == ref {
			return v, true
		}
	}
	for _, v := range s {
		if strings.EqualFold(v.Name, ref) {
			return v, true
		}
	}
	return SavedSearch{}, false
}

// Upsert replaces the search with the same name or appends a new one built
// with newID. The stored search is returned.
func (s Searches) Upsert(name string, f Filter, now time.Time, newID func() string) (Searches, SavedSearch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, SavedSearch{}, errors.New("tasks: saved search needs a name")
	}
	out := append(Searches(nil), s...)
	for i, v := range out {
		if strings.EqualFold(v.Name, name) {
			out[i].Filter = f
			return out, out[i], nil
		}
	}
	saved := SavedSearch{ID: newID(), Name: name, Filter: f, CreatedAt: now.UTC().Truncate(time.Second)}
	out = append(out, saved)
	return out, saved, nil
}

// Remove drops the search matching ref.
func (s Searches) Remove(ref string) (Searches, error) {
	found, ok := s.Lookup(ref)
	if !ok {
		return s, ErrNoSearch
	}
	out := make(Searches, 0, len(s)-1)
	for _, v := range s {
		if v.ID != found.ID {
			out = append(out, v)
		}
	}
	return out, nil
}

// Sorted returns the searches ordered by name.
func (s Searches) Sorted() Searches {
	out := append(Searches(nil), s...)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
