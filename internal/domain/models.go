package domain

import (
	"time"
)

// EventRoster is the normalized per-event roster: categories plus the
// participants keyed by their event-local id.
type EventRoster struct {
	EventID      int
	EventName    string
	EventType    string
	DisplayOrder int
	Categories   []Category
	Participants map[string]Participant
}

type Category struct {
	Name         string
	DisplayOrder int
	ArcherIDs    []string // event-local ids, in roster order
}

type Participant struct {
	LocalID   string
	StableID  string
	FirstName string
	LastName  string
	Target    []string
	Country   string
	Team      string
}

// EventScores maps event-local archer id to its scoring string.
type EventScores map[string]string

type TournamentSummary struct {
	ID     int
	Name   string
	Events []EventSummary
}

type EventSummary struct {
	ID           int
	DisplayOrder int
	Type         string
	Name         string
}

type Archer struct {
	ID        string                  `json:"id"`
	FirstName string                  `json:"firstName"`
	LastName  string                  `json:"lastName"`
	FullName  string                  `json:"fullName"`
	Results   map[string]ArcherResult `json:"results"` // keyed by tournament id
}

type ArcherResult struct {
	TournamentID   string `json:"tournamentId"`
	TournamentName string `json:"tournamentName"`
	EventID        int    `json:"eventId"`
	CategoryName   string `json:"categoryName"`
	Arrows         string `json:"arrows"`
	Score          int    `json:"score"`
}

type Tournament struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Event Event  `json:"event"`
}

type Event struct {
	ID         int                     `json:"id"`
	Name       string                  `json:"name"`
	Categories map[string]CategoryView `json:"categories"`
}

type CategoryView struct {
	Name    string                    `json:"name"`
	Archers map[string]CategoryArcher `json:"archers"` // keyed by stable id
}

type CategoryArcher struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	Arrows    string `json:"arrows"`
	Score     int    `json:"score"`
}

// AmbiguityWarning records a stable id observed again with a different name.
// The participant's result is withheld rather than merged into the known
// identity.
type AmbiguityWarning struct {
	StableID     string `json:"stableId"`
	EventID      int    `json:"eventId"`
	LocalID      string `json:"localId"`
	KnownName    string `json:"knownName"`
	ObservedName string `json:"observedName"`
}

// ArcheryDB is the fully assembled result served by /api/archers.
type ArcheryDB struct {
	BuildID     string                `json:"buildId"`
	BuiltAt     time.Time             `json:"builtAt"`
	Archers     map[string]*Archer    `json:"archers"`
	Tournaments map[string]Tournament `json:"tournaments"`
	Warnings    []AmbiguityWarning    `json:"warnings,omitempty"`
}
