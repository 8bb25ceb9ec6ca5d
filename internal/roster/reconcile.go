package roster

import (
	"sort"

	"archery-results/internal/domain"
)

// IDMap maps event-local archer ids to stable ids for one event.
type IDMap map[string]string

func (m IDMap) Resolve(localID string) (string, bool) {
	id, ok := m[localID]
	return id, ok
}

// Reconcile registers every participant of the roster and returns the
// event-local to stable id map for this event only. A participant whose
// stable id is already registered under another name is left unmapped and
// withheld, so two people never share one registry entry.
func Reconcile(reg *Registry, roster domain.EventRoster) (IDMap, error) {
	localIDs := make([]string, 0, len(roster.Participants))
	for localID := range roster.Participants {
		localIDs = append(localIDs, localID)
	}
	sort.Strings(localIDs)

	ids := make(IDMap, len(localIDs))
	owners := make(map[string]string, len(localIDs))

	for _, localID := range localIDs {
		p := roster.Participants[localID]
		if p.StableID == "" {
			return nil, &IdentifierResolutionError{EventID: roster.EventID, LocalID: localID, Err: ErrMissingStableID}
		}
		if owner, seen := owners[p.StableID]; seen && owner != localID {
			return nil, &IdentifierResolutionError{EventID: roster.EventID, LocalID: localID, StableID: p.StableID, Err: ErrAmbiguousID}
		}
		owners[p.StableID] = localID

		archer, created := reg.register(p)
		if !created {
			if observed := FullName(p.FirstName, p.LastName); observed != archer.FullName {
				reg.withhold(domain.AmbiguityWarning{
					StableID:     p.StableID,
					EventID:      roster.EventID,
					LocalID:      localID,
					KnownName:    archer.FullName,
					ObservedName: observed,
				})
				continue
			}
		}
		ids[localID] = p.StableID
	}

	return ids, nil
}
