package service

import (
	"sort"

	"archery-results/internal/domain"
)

type Standing struct {
	Rank   int                   `json:"rank"`
	Archer domain.CategoryArcher `json:"archer"`
}

type Scoreboard struct {
	TournamentID   string     `json:"tournamentId"`
	TournamentName string     `json:"tournamentName"`
	EventID        int        `json:"eventId"`
	Category       string     `json:"category"`
	Standings      []Standing `json:"standings"`
}

// Scoreboards lists one scoreboard per tournament category, ordered by
// tournament id then category name. An empty category keeps every category.
func Scoreboards(db *domain.ArcheryDB, category string) []Scoreboard {
	tournamentIDs := make([]string, 0, len(db.Tournaments))
	for id := range db.Tournaments {
		tournamentIDs = append(tournamentIDs, id)
	}
	sort.Strings(tournamentIDs)

	boards := []Scoreboard{}
	for _, id := range tournamentIDs {
		t := db.Tournaments[id]
		names := make([]string, 0, len(t.Event.Categories))
		for name := range t.Event.Categories {
			if category == "" || name == category {
				names = append(names, name)
			}
		}
		sort.Strings(names)

		for _, name := range names {
			boards = append(boards, Scoreboard{
				TournamentID:   t.ID,
				TournamentName: t.Name,
				EventID:        t.Event.ID,
				Category:       name,
				Standings:      Standings(t.Event.Categories[name]),
			})
		}
	}
	return boards
}

// Standings ranks a category by score, highest first. Equal scores share a
// rank and the next rank skips accordingly.
func Standings(view domain.CategoryView) []Standing {
	archers := make([]domain.CategoryArcher, 0, len(view.Archers))
	for _, a := range view.Archers {
		archers = append(archers, a)
	}
	sort.Slice(archers, func(i, j int) bool {
		if archers[i].Score != archers[j].Score {
			return archers[i].Score > archers[j].Score
		}
		if archers[i].FullName != archers[j].FullName {
			return archers[i].FullName < archers[j].FullName
		}
		return archers[i].ID < archers[j].ID
	})

	standings := make([]Standing, len(archers))
	for i, a := range archers {
		rank := i + 1
		if i > 0 && a.Score == archers[i-1].Score {
			rank = standings[i-1].Rank
		}
		standings[i] = Standing{Rank: rank, Archer: a}
	}
	return standings
}
