package api

import (
	"context"
	"strconv"

	"archery-results/internal/domain"
)

// Upstream payloads use abbreviated field names. The fetch helpers below
// decode them and hand back domain types only.

// CachedGetter loads the JSON body at url into out, going through cacheKey.
type CachedGetter interface {
	Get(ctx context.Context, url, cacheKey string, out any) error
}

func FetchTournament(ctx context.Context, g CachedGetter, url, cacheKey string) (domain.TournamentSummary, error) {
	var raw rawTournament
	if err := g.Get(ctx, url, cacheKey, &raw); err != nil {
		return domain.TournamentSummary{}, err
	}
	return raw.toDomain(), nil
}

func FetchEventRoster(ctx context.Context, g CachedGetter, url, cacheKey string) (domain.EventRoster, error) {
	var raw rawEventRoster
	if err := g.Get(ctx, url, cacheKey, &raw); err != nil {
		return domain.EventRoster{}, err
	}
	return raw.toDomain()
}

func FetchScores(ctx context.Context, g CachedGetter, url, cacheKey string) (domain.EventScores, error) {
	var raw rawScores
	if err := g.Get(ctx, url, cacheKey, &raw); err != nil {
		return nil, err
	}
	return raw.toDomain(), nil
}

type rawTournament struct {
	ID     int               `json:"id"`
	Name   string            `json:"tnm"`
	Events []rawEventSummary `json:"evs"`
}

type rawEventSummary struct {
	ID           int    `json:"id"`
	DisplayOrder int    `json:"dor"`
	Type         string `json:"etp"`
	Name         string `json:"enm"`
}

type rawEventRoster struct {
	ID           int                       `json:"id"`
	Name         string                    `json:"enm"`
	Type         string                    `json:"etp"`
	DisplayOrder int                       `json:"dor"`
	Categories   []rawCategory             `json:"cgs"`
	Participants map[string]rawParticipant `json:"rps"`
}

type rawCategory struct {
	Name         string              `json:"nm"`
	DisplayOrder int                 `json:"dor"`
	Archers      []rawCategoryArcher `json:"ars"`
}

type rawCategoryArcher struct {
	ID int `json:"aid"`
}

// rawParticipant is keyed by its event-local id in the roster; aid repeats
// that key when present.
type rawParticipant struct {
	ID        int      `json:"aid"`
	StableID  string   `json:"uid"`
	FirstName string   `json:"fnm"`
	LastName  string   `json:"lnm"`
	Target    []string `json:"tgt"`
	Country   string   `json:"cnd"`
	Team      string   `json:"tm"`
}

type rawScores struct {
	Archers map[string]string `json:"ars"`
}

func (t rawTournament) toDomain() domain.TournamentSummary {
	events := make([]domain.EventSummary, 0, len(t.Events))
	for _, e := range t.Events {
		events = append(events, domain.EventSummary{
			ID:           e.ID,
			DisplayOrder: e.DisplayOrder,
			Type:         e.Type,
			Name:         e.Name,
		})
	}
	return domain.TournamentSummary{ID: t.ID, Name: t.Name, Events: events}
}

func (r rawEventRoster) toDomain() (domain.EventRoster, error) {
	categories := make([]domain.Category, 0, len(r.Categories))
	for _, c := range r.Categories {
		ids := make([]string, 0, len(c.Archers))
		for _, a := range c.Archers {
			ids = append(ids, strconv.Itoa(a.ID))
		}
		categories = append(categories, domain.Category{
			Name:         c.Name,
			DisplayOrder: c.DisplayOrder,
			ArcherIDs:    ids,
		})
	}

	participants := make(map[string]domain.Participant, len(r.Participants))
	for key, p := range r.Participants {
		if p.ID != 0 && strconv.Itoa(p.ID) != key {
			return domain.EventRoster{}, &ParticipantKeyError{EventID: r.ID, Key: key, ID: p.ID}
		}
		participants[key] = domain.Participant{
			LocalID:   key,
			StableID:  p.StableID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Target:    p.Target,
			Country:   p.Country,
			Team:      p.Team,
		}
	}

	return domain.EventRoster{
		EventID:      r.ID,
		EventName:    r.Name,
		EventType:    r.Type,
		DisplayOrder: r.DisplayOrder,
		Categories:   categories,
		Participants: participants,
	}, nil
}

func (s rawScores) toDomain() domain.EventScores {
	scores := make(domain.EventScores, len(s.Archers))
	for k, v := range s.Archers {
		scores[k] = v
	}
	return scores
}
