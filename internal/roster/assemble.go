package roster

import (
	"fmt"

	"archery-results/internal/domain"
	"archery-results/internal/scoring"
)

// EventInput is everything known about one tournament's event after fetching.
type EventInput struct {
	TournamentID   string
	TournamentName string
	Roster         domain.EventRoster
	Scores         domain.EventScores
}

// RecordResults writes one ArcherResult per categorized archer, keyed by
// tournament id. Withheld participants are skipped. Recording the same
// tournament again overwrites the previous result for that tournament.
func RecordResults(reg *Registry, ids IDMap, in EventInput) error {
	for _, category := range in.Roster.Categories {
		for _, localID := range category.ArcherIDs {
			if reg.Withheld(in.Roster.EventID, localID) {
				continue
			}
			stableID, ok := ids.Resolve(localID)
			if !ok {
				return &IdentifierResolutionError{EventID: in.Roster.EventID, LocalID: localID, Err: ErrUnmappedLocalID}
			}
			archer, ok := reg.Get(stableID)
			if !ok {
				return &RegistryConsistencyError{TournamentID: in.TournamentID, Category: category.Name, StableID: stableID, Err: ErrUnregisteredID}
			}

			arrows := in.Scores[localID]
			score, err := scoring.Decode(arrows)
			if err != nil {
				return fmt.Errorf("archer %s in tournament %s: %w", stableID, in.TournamentID, err)
			}

			archer.Results[in.TournamentID] = domain.ArcherResult{
				TournamentID:   in.TournamentID,
				TournamentName: in.TournamentName,
				EventID:        in.Roster.EventID,
				CategoryName:   category.Name,
				Arrows:         arrows,
				Score:          score,
			}
		}
	}
	return nil
}

// AssembleTournament builds the category views of one tournament from the
// registry. Names and scores are read from registry entries, so RecordResults
// must have run for this tournament first.
func AssembleTournament(reg *Registry, ids IDMap, in EventInput) (domain.Tournament, error) {
	event := domain.Event{
		ID:         in.Roster.EventID,
		Name:       in.Roster.EventName,
		Categories: make(map[string]domain.CategoryView, len(in.Roster.Categories)),
	}

	for _, category := range in.Roster.Categories {
		view := domain.CategoryView{
			Name:    category.Name,
			Archers: make(map[string]domain.CategoryArcher, len(category.ArcherIDs)),
		}
		for _, localID := range category.ArcherIDs {
			if reg.Withheld(in.Roster.EventID, localID) {
				continue
			}
			stableID, ok := ids.Resolve(localID)
			if !ok {
				return domain.Tournament{}, &IdentifierResolutionError{EventID: in.Roster.EventID, LocalID: localID, Err: ErrUnmappedLocalID}
			}
			archer, ok := reg.Get(stableID)
			if !ok {
				return domain.Tournament{}, &RegistryConsistencyError{TournamentID: in.TournamentID, Category: category.Name, StableID: stableID, Err: ErrUnregisteredID}
			}
			result, ok := archer.Results[in.TournamentID]
			if !ok {
				return domain.Tournament{}, &RegistryConsistencyError{TournamentID: in.TournamentID, Category: category.Name, StableID: stableID, Err: ErrMissingResult}
			}
			view.Archers[stableID] = domain.CategoryArcher{
				ID:        archer.ID,
				FirstName: archer.FirstName,
				LastName:  archer.LastName,
				FullName:  archer.FullName,
				Arrows:    result.Arrows,
				Score:     result.Score,
			}
		}
		event.Categories[category.Name] = view
	}

	return domain.Tournament{
		ID:    in.TournamentID,
		Name:  in.TournamentName,
		Event: event,
	}, nil
}

