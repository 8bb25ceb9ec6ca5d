package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"archery-results/internal/api"
	"archery-results/internal/config"
	"archery-results/internal/constants"
	"archery-results/internal/domain"
	"archery-results/internal/metrics"
	"archery-results/internal/roster"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var ErrNoEvents = errors.New("tournament lists no events")

// URLBuilder names the upstream resources for tournaments, events and scores.
type URLBuilder interface {
	TournamentURL(id string) string
	EventURL(eventID int) string
	ScoresURL(eventID int) string
}

type ResultsService struct {
	fetcher *Fetcher
	urls    URLBuilder
	cfg     *config.Config
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

func NewResultsService(fetcher *Fetcher, urls URLBuilder, cfg *config.Config, m *metrics.Metrics, logger zerolog.Logger) *ResultsService {
	return &ResultsService{
		fetcher: fetcher,
		urls:    urls,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// GetArcheryDB returns the assembled result for the configured tournaments.
// In assembled cache mode the whole result is cached under one key.
func (s *ResultsService) GetArcheryDB(ctx context.Context) (*domain.ArcheryDB, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if s.cfg.CacheMode == config.CacheModeAssembled {
		var cached domain.ArcheryDB
		hit, err := s.fetcher.Lookup(ctx, constants.AssembledCacheKey, &cached)
		if err != nil {
			return nil, err
		}
		if hit {
			s.logger.Info().Str("build_id", cached.BuildID).Msg("returning cached archery data")
			return &cached, nil
		}
	}

	db, err := s.Build(ctx, s.cfg.TournamentIDs)
	if err != nil {
		return nil, err
	}

	if s.cfg.CacheMode == config.CacheModeAssembled {
		if err := s.fetcher.Put(ctx, constants.AssembledCacheKey, db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Build processes tournaments strictly in the given order against one fresh
// registry. Nothing is returned unless every tournament succeeds.
func (s *ResultsService) Build(ctx context.Context, tournamentIDs []string) (*domain.ArcheryDB, error) {
	start := s.now()
	buildID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate build id: %w", err)
	}
	logger := s.logger.With().Str("build_id", buildID).Logger()
	logger.Info().Strs("tournament_ids", tournamentIDs).Msg("building archer registry")

	reg := roster.NewRegistry()
	tournaments := make(map[string]domain.Tournament, len(tournamentIDs))

	for _, id := range tournamentIDs {
		t, err := s.processTournament(ctx, reg, id)
		if err != nil {
			s.metrics.BuildFailed()
			logger.Error().Err(err).Str("tournament_id", id).Msg("registry build aborted")
			return nil, fmt.Errorf("tournament %s: %w", id, err)
		}
		tournaments[id] = t
	}

	for _, w := range reg.Warnings() {
		logger.Warn().
			Str("stable_id", w.StableID).
			Int("event_id", w.EventID).
			Str("local_id", w.LocalID).
			Str("known_name", w.KnownName).
			Str("observed_name", w.ObservedName).
			Msg("stable id seen with a different name, result withheld")
	}

	elapsed := s.now().Sub(start)
	s.metrics.BuildFinished(elapsed.Seconds(), reg.Len())
	logger.Info().
		Int("archers", reg.Len()).
		Int("tournaments", len(tournaments)).
		Dur("duration", elapsed).
		Msg("archer registry built")

	return &domain.ArcheryDB{
		BuildID:     buildID,
		BuiltAt:     start.UTC(),
		Archers:     reg.Archers(),
		Tournaments: tournaments,
		Warnings:    reg.Warnings(),
	}, nil
}

func (s *ResultsService) processTournament(ctx context.Context, reg *roster.Registry, tournamentID string) (domain.Tournament, error) {
	summary, err := api.FetchTournament(ctx, s.fetcher, s.urls.TournamentURL(tournamentID), constants.TournamentCacheKeyPrefix+tournamentID)
	if err != nil {
		return domain.Tournament{}, err
	}
	if len(summary.Events) == 0 {
		return domain.Tournament{}, ErrNoEvents
	}

	eventRoster, scores, err := s.fetchEvent(ctx, summary.Events[0].ID)
	if err != nil {
		return domain.Tournament{}, err
	}

	in := roster.EventInput{
		TournamentID:   tournamentID,
		TournamentName: summary.Name,
		Roster:         eventRoster,
		Scores:         scores,
	}

	ids, err := roster.Reconcile(reg, in.Roster)
	if err != nil {
		return domain.Tournament{}, err
	}
	if err := roster.RecordResults(reg, ids, in); err != nil {
		return domain.Tournament{}, err
	}
	return roster.AssembleTournament(reg, ids, in)
}

// fetchEvent loads roster and scores of one event concurrently.
func (s *ResultsService) fetchEvent(ctx context.Context, eventID int) (domain.EventRoster, domain.EventScores, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(apiCtx)
	var eventRoster domain.EventRoster
	var scores domain.EventScores

	g.Go(func() error {
		var err error
		eventRoster, err = api.FetchEventRoster(gCtx, s.fetcher, s.urls.EventURL(eventID), fmt.Sprintf("%s%d", constants.EventCacheKeyPrefix, eventID))
		return err
	})

	g.Go(func() error {
		var err error
		scores, err = api.FetchScores(gCtx, s.fetcher, s.urls.ScoresURL(eventID), fmt.Sprintf("%s%d", constants.ScoresCacheKeyPrefix, eventID))
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.EventRoster{}, nil, fmt.Errorf("failed to fetch event %d: %w", eventID, err)
	}

	s.logger.Debug().Int("event_id", eventID).Int("participants", len(eventRoster.Participants)).Msg("event data fetched")
	return eventRoster, scores, nil
}

// Flush clears every cached payload and assembled result.
func (s *ResultsService) Flush(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	n, err := s.fetcher.Flush(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("cache flush failed")
		return 0, err
	}
	s.logger.Info().Int64("deleted", n).Msg("cache flushed by admin request")
	return n, nil
}

// PurgeExpired drops cache entries whose ttl has elapsed.
func (s *ResultsService) PurgeExpired(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	n, err := s.fetcher.PurgeExpired(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("cache purge failed")
		return 0, err
	}
	s.logger.Info().Int64("deleted", n).Msg("expired cache entries purged")
	return n, nil
}
