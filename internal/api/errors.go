package api

import (
	"fmt"
)

// UpstreamFetchError covers both transport failures and non-2xx responses.
type UpstreamFetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: upstream status %d", e.URL, e.StatusCode)
}

func (e *UpstreamFetchError) Unwrap() error {
	return e.Err
}

// ParticipantKeyError reports a roster entry whose aid disagrees with the
// event-local id it is keyed by.
type ParticipantKeyError struct {
	EventID int
	Key     string
	ID      int
}

func (e *ParticipantKeyError) Error() string {
	return fmt.Sprintf("event %d: participant keyed %q carries aid %d", e.EventID, e.Key, e.ID)
}
