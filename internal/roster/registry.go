// Package roster merges per-event rosters into a cross-tournament archer
// registry keyed by stable archer id, and builds the per-tournament views.
package roster

import (
	"sort"

	"archery-results/internal/domain"
)

// Registry is append-only for identity fields: once an archer is registered
// its names never change, only its results map grows.
type Registry struct {
	archers  map[string]*domain.Archer
	warnings []domain.AmbiguityWarning
	withheld map[eventLocalID]struct{}
}

type eventLocalID struct {
	eventID int
	localID string
}

func NewRegistry() *Registry {
	return &Registry{
		archers:  make(map[string]*domain.Archer),
		withheld: make(map[eventLocalID]struct{}),
	}
}

func (r *Registry) Get(stableID string) (*domain.Archer, bool) {
	a, ok := r.archers[stableID]
	return a, ok
}

func (r *Registry) Len() int {
	return len(r.archers)
}

// Archers exposes the registry map. Callers must treat it as read-only.
func (r *Registry) Archers() map[string]*domain.Archer {
	return r.archers
}

// IDs returns the registered stable ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.archers))
	for id := range r.archers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) Warnings() []domain.AmbiguityWarning {
	return r.warnings
}

// Withheld reports whether the participant's stable id conflicted with a known
// identity, in which case the participant has no mapping and no results.
func (r *Registry) Withheld(eventID int, localID string) bool {
	_, ok := r.withheld[eventLocalID{eventID: eventID, localID: localID}]
	return ok
}

func (r *Registry) withhold(w domain.AmbiguityWarning) {
	key := eventLocalID{eventID: w.EventID, localID: w.LocalID}
	if _, ok := r.withheld[key]; ok {
		return
	}
	r.withheld[key] = struct{}{}
	r.warnings = append(r.warnings, w)
}

func (r *Registry) register(p domain.Participant) (*domain.Archer, bool) {
	if a, ok := r.archers[p.StableID]; ok {
		return a, false
	}
	a := &domain.Archer{
		ID:        p.StableID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		FullName:  FullName(p.FirstName, p.LastName),
		Results:   make(map[string]domain.ArcherResult),
	}
	r.archers[p.StableID] = a
	return a, true
}

// FullName joins first and last name with a single space.
func FullName(first, last string) string {
	return first + " " + last
}
