package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"archery-results/internal/config"
	"archery-results/internal/domain"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *ResultsClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewResultsClient(&config.Config{ResultsAPIBaseURL: srv.URL})
}

func TestURLs(t *testing.T) {
	c := NewResultsClient(&config.Config{ResultsAPIBaseURL: "https://results.example"})
	assert.Equal(t, "https://results.example/tournaments/77", c.TournamentURL("77"))
	assert.Equal(t, "https://results.example/events/4221", c.EventURL(4221))
	assert.Equal(t, "https://results.example/events/4221/scores", c.ScoresURL(4221))
}

func TestGetRaw(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/events/1/scores", r.URL.Path)
		w.Write([]byte(`{"ars":{"1":"T9"}}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	body, err := c.GetRaw(ctx, c.ScoresURL(1))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ars":{"1":"T9"}}`, string(body))
}

func TestGetRawNon2xx(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	})

	_, err := c.GetRaw(context.Background(), c.EventURL(9))
	require.Error(t, err)

	var upErr *UpstreamFetchError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusServiceUnavailable, upErr.StatusCode)
	assert.Contains(t, upErr.URL, "/events/9")
}

func TestGetRawTransportError(t *testing.T) {
	c := NewResultsClient(&config.Config{ResultsAPIBaseURL: "http://127.0.0.1:1"})
	_, err := c.GetRaw(context.Background(), c.EventURL(1))

	var upErr *UpstreamFetchError
	require.True(t, errors.As(err, &upErr))
	assert.Error(t, upErr.Err)
	assert.Zero(t, upErr.StatusCode)
}

// stubGetter serves fixed JSON bodies by cache key.
type stubGetter struct {
	bodies map[string]string
	err    error
}

func (g stubGetter) Get(_ context.Context, _, cacheKey string, out any) error {
	if g.err != nil {
		return g.err
	}
	return json.Unmarshal([]byte(g.bodies[cacheKey]), out)
}

func TestFetchEventRoster(t *testing.T) {
	g := stubGetter{bodies: map[string]string{"event_4221": `{
		"id": 4221, "enm": "Indoor Open", "etp": "indoor", "dor": 1,
		"cgs": [{"nm": "Barebow Senior Men", "dor": 3, "ars": [{"aid": 11}, {"aid": 12}]}],
		"rps": {
			"11": {"aid": 11, "uid": "A-1", "fnm": "Alan", "lnm": "Archer", "tgt": ["4A"], "tnl": [4], "cnd": "GB", "tm": "", "alt": "", "rtl": "", "tbs": ""},
			"12": {"uid": "B-2", "fnm": "Bob", "lnm": "Bowman"}
		}
	}`}}

	roster, err := FetchEventRoster(context.Background(), g, "unused", "event_4221")
	require.NoError(t, err)

	assert.Equal(t, 4221, roster.EventID)
	assert.Equal(t, "Indoor Open", roster.EventName)
	require.Len(t, roster.Categories, 1)
	assert.Equal(t, []string{"11", "12"}, roster.Categories[0].ArcherIDs)
	assert.Equal(t, domain.Participant{
		LocalID:   "11",
		StableID:  "A-1",
		FirstName: "Alan",
		LastName:  "Archer",
		Target:    []string{"4A"},
		Country:   "GB",
	}, roster.Participants["11"])
	assert.Equal(t, "12", roster.Participants["12"].LocalID, "missing aid falls back to the roster key")
}

func TestFetchEventRosterRejectsMismatchedKey(t *testing.T) {
	g := stubGetter{bodies: map[string]string{"event_7": `{"id": 7, "rps": {"11": {"aid": 12, "uid": "A"}}}`}}

	_, err := FetchEventRoster(context.Background(), g, "unused", "event_7")

	var keyErr *ParticipantKeyError
	require.True(t, errors.As(err, &keyErr))
	assert.Equal(t, ParticipantKeyError{EventID: 7, Key: "11", ID: 12}, *keyErr)
}

func TestFetchTournament(t *testing.T) {
	g := stubGetter{bodies: map[string]string{"tournament_900": `{"id": 900, "tnm": "Winter Classic", "evs": [{"id": 4221, "dor": 1, "etp": "indoor", "enm": "Indoor Open"}]}`}}

	summary, err := FetchTournament(context.Background(), g, "unused", "tournament_900")
	require.NoError(t, err)
	assert.Equal(t, domain.TournamentSummary{
		ID:   900,
		Name: "Winter Classic",
		Events: []domain.EventSummary{
			{ID: 4221, DisplayOrder: 1, Type: "indoor", Name: "Indoor Open"},
		},
	}, summary)
}

func TestFetchScores(t *testing.T) {
	g := stubGetter{bodies: map[string]string{"scores_1": `{"ars": {"1": "T9M", "2": ""}}`}}

	scores, err := FetchScores(context.Background(), g, "unused", "scores_1")
	require.NoError(t, err)
	assert.Equal(t, domain.EventScores{"1": "T9M", "2": ""}, scores)
}

func TestFetchPropagatesGetterError(t *testing.T) {
	boom := errors.New("cache unavailable")
	g := stubGetter{err: boom}
	ctx := context.Background()

	_, err := FetchTournament(ctx, g, "u", "k")
	assert.ErrorIs(t, err, boom)
	_, err = FetchEventRoster(ctx, g, "u", "k")
	assert.ErrorIs(t, err, boom)
	_, err = FetchScores(ctx, g, "u", "k")
	assert.ErrorIs(t, err, boom)
}
