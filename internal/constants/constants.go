package constants

import "time"

const (
	DefaultCacheTTL = 3600 * time.Second
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 10
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	TournamentCacheKeyPrefix = "tournament_"
	EventCacheKeyPrefix      = "event_"
	ScoresCacheKeyPrefix     = "scores_"
	AssembledCacheKey        = "archeryData"
)

const (
	BarebowSeniorMen   = "Barebow Senior Men"
	BarebowSeniorWomen = "Barebow Senior Women"
)
