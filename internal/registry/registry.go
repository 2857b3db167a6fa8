// Package registry implements the pure transformations that move server
// entries between the active and inactive collections of a document.
package registry

import (
	"fmt"
	"sort"

	"holster-go/internal/config"
)

// DuplicateNameError reports a create with a name that already exists in
// either collection.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("server %q already exists", e.Name)
}

// StatusResult partitions the names requested in a status update.
type StatusResult struct {
	Updated  []string `json:"updated"`
	NotFound []string `json:"not_found"`
}

// DeleteResult partitions the names requested in a delete.
type DeleteResult struct {
	Deleted  []string `json:"deleted"`
	NotFound []string `json:"not_found"`
}

// Create inserts a new entry into the inactive collection. New servers start
// holstered: the host only launches an entry after an explicit activation.
func Create(doc *config.Document, name string, entry config.ServerEntry) error {
	if _, ok := doc.Active[name]; ok {
		return &DuplicateNameError{Name: name}
	}
	if _, ok := doc.Inactive[name]; ok {
		return &DuplicateNameError{Name: name}
	}
	doc.Inactive[name] = entry
	return nil
}

// List projects copies of the two collections without mutating the document.
func List(doc *config.Document) (active, inactive map[string]config.ServerEntry) {
	active = make(map[string]config.ServerEntry, len(doc.Active))
	for name, entry := range doc.Active {
		active[name] = entry
	}
	inactive = make(map[string]config.ServerEntry, len(doc.Inactive))
	for name, entry := range doc.Inactive {
		inactive[name] = entry
	}
	return active, inactive
}

// SetStatus moves each named entry into the target collection. A name
// already there counts as updated so repeated calls report the same outcome;
// unknown names land in NotFound without aborting the rest of the batch.
// Each move is a single delete+insert, so no name is ever in both maps.
func SetStatus(doc *config.Document, names []string, active bool) StatusResult {
	target, other := doc.Inactive, doc.Active
	if active {
		target, other = doc.Active, doc.Inactive
	}

	result := StatusResult{Updated: []string{}, NotFound: []string{}}
	for _, name := range dedupe(names) {
		if _, ok := target[name]; ok {
			result.Updated = append(result.Updated, name)
			continue
		}
		entry, ok := other[name]
		if !ok {
			result.NotFound = append(result.NotFound, name)
			continue
		}
		delete(other, name)
		target[name] = entry
		result.Updated = append(result.Updated, name)
	}

	sort.Strings(result.Updated)
	sort.Strings(result.NotFound)
	return result
}

// Delete removes each named entry from whichever collection holds it.
// Already-missing names are tolerated and reported in NotFound.
func Delete(doc *config.Document, names []string) DeleteResult {
	result := DeleteResult{Deleted: []string{}, NotFound: []string{}}
	for _, name := range dedupe(names) {
		if _, ok := doc.Active[name]; ok {
			delete(doc.Active, name)
			result.Deleted = append(result.Deleted, name)
			continue
		}
		if _, ok := doc.Inactive[name]; ok {
			delete(doc.Inactive, name)
			result.Deleted = append(result.Deleted, name)
			continue
		}
		result.NotFound = append(result.NotFound, name)
	}

	sort.Strings(result.Deleted)
	sort.Strings(result.NotFound)
	return result
}

// Names returns the sorted names of a collection.
func Names(entries map[string]config.ServerEntry) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
