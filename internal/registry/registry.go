// Package registry holds the curated merchant catalog consulted during
// subscription extraction. Entries map a canonical merchant name to its
// category, display color and alternate spellings.
package registry

import (
	"encoding/json"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/khalidmt90/subnav/internal/database/models"
)

// Entry describes one known merchant
type Entry struct {
	Key      string          `json:"key"` // canonical lowercase name
	Category models.Category `json:"category"`
	Color    string          `json:"color"`
	Aliases  []string        `json:"aliases,omitempty"`
}

// DisplayName returns the user-facing form of the canonical key
func (e *Entry) DisplayName() string {
	if e.Key == "" {
		return ""
	}
	return strings.ToUpper(e.Key[:1]) + e.Key[1:]
}

// Registry is an ordered merchant catalog. Iteration order is insertion
// order so "first match wins" is reproducible.
type Registry struct {
	entries []Entry
	byKey   map[string]*Entry
}

// minMatchLen rejects trivially short substring matches ("x" inside
// unrelated words). Short keys still match when the probed text is a
// sender address, where merchants self-identify.
const minMatchLen = 3

// New builds a registry from the given entries, preserving order
func New(entries []Entry) *Registry {
	r := &Registry{
		entries: entries,
		byKey:   make(map[string]*Entry, len(entries)),
	}
	for i := range r.entries {
		r.byKey[r.entries[i].Key] = &r.entries[i]
	}
	return r
}

// Default returns the built-in merchant catalog
func Default() *Registry {
	return New(defaultEntries())
}

// Get returns the entry for a canonical lowercase key
func (r *Registry) Get(key string) (*Entry, bool) {
	e, ok := r.byKey[strings.ToLower(key)]
	return e, ok
}

// Len returns the number of entries
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns the ordered entry list
func (r *Registry) Entries() []Entry {
	return r.entries
}

// Match returns the first entry whose key or alias appears as a
// case-insensitive substring of text. Keys shorter than minMatchLen are
// only considered when allowShort is set (sender-address probes); aliases
// always require the minimum length.
func (r *Registry) Match(text string, allowShort bool) *Entry {
	lower := strings.ToLower(text)
	for i := range r.entries {
		e := &r.entries[i]
		if utf8.RuneCountInString(e.Key) >= minMatchLen || allowShort {
			if strings.Contains(lower, e.Key) {
				return e
			}
		}
		for _, alias := range e.Aliases {
			aliasLower := strings.ToLower(alias)
			if utf8.RuneCountInString(aliasLower) < minMatchLen {
				continue
			}
			if strings.Contains(lower, aliasLower) {
				return e
			}
		}
	}
	return nil
}

// LoadFile extends the registry with entries from a JSON file. Entries with
// a known key replace the built-in definition in place; new keys append in
// file order.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var extra []Entry
	if err := json.Unmarshal(data, &extra); err != nil {
		return err
	}
	for _, e := range extra {
		e.Key = strings.ToLower(e.Key)
		if !e.Category.IsValid() {
			e.Category = models.CategoryOther
		}
		if existing, ok := r.byKey[e.Key]; ok {
			*existing = e
			continue
		}
		r.entries = append(r.entries, e)
	}
	// Re-index: appends may have reallocated the backing array
	r.byKey = make(map[string]*Entry, len(r.entries))
	for i := range r.entries {
		r.byKey[r.entries[i].Key] = &r.entries[i]
	}
	return nil
}
