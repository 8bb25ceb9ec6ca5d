package service

import (
	"testing"

	"archery-results/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandings(t *testing.T) {
	view := domain.CategoryView{
		Name: "Barebow Senior Men",
		Archers: map[string]domain.CategoryArcher{
			"A": {ID: "A", FullName: "Alan Archer", Score: 16},
			"B": {ID: "B", FullName: "Bob Bowman", Score: 49},
			"E": {ID: "E", FullName: "Eve End", Score: 16},
			"F": {ID: "F", FullName: "Finn Fletch", Score: 3},
		},
	}

	got := Standings(view)
	require.Len(t, got, 4)

	var ids []string
	var ranks []int
	for _, s := range got {
		ids = append(ids, s.Archer.ID)
		ranks = append(ranks, s.Rank)
	}
	assert.Equal(t, []string{"B", "A", "E", "F"}, ids)
	assert.Equal(t, []int{1, 2, 2, 4}, ranks)
}

func TestScoreboards(t *testing.T) {
	db := &domain.ArcheryDB{
		Tournaments: map[string]domain.Tournament{
			"901": {ID: "901", Name: "Spring", Event: domain.Event{ID: 2, Categories: map[string]domain.CategoryView{
				"Barebow Senior Men": {Name: "Barebow Senior Men"},
			}}},
			"900": {ID: "900", Name: "Winter", Event: domain.Event{ID: 1, Categories: map[string]domain.CategoryView{
				"Barebow Senior Women": {Name: "Barebow Senior Women"},
				"Barebow Senior Men":   {Name: "Barebow Senior Men"},
			}}},
		},
	}

	all := Scoreboards(db, "")
	require.Len(t, all, 3)
	assert.Equal(t, "900", all[0].TournamentID)
	assert.Equal(t, "Barebow Senior Men", all[0].Category)
	assert.Equal(t, "Barebow Senior Women", all[1].Category)
	assert.Equal(t, "901", all[2].TournamentID)

	men := Scoreboards(db, "Barebow Senior Men")
	require.Len(t, men, 2)
	for _, b := range men {
		assert.Equal(t, "Barebow Senior Men", b.Category)
	}

	assert.Empty(t, Scoreboards(db, "Compound Junior"))
}
