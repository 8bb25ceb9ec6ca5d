package api

import (
	"context"
	"fmt"
	"time"

	"archery-results/internal/config"

	"github.com/valyala/fasthttp"
)

// ResultsClient talks to the upstream results provider.
type ResultsClient struct {
	baseURL string
	client  *fasthttp.Client
}

func NewResultsClient(cfg *config.Config) *ResultsClient {
	return &ResultsClient{
		baseURL: cfg.ResultsAPIBaseURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     50,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *ResultsClient) TournamentURL(id string) string {
	return fmt.Sprintf("%s/tournaments/%s", c.baseURL, id)
}

func (c *ResultsClient) EventURL(eventID int) string {
	return fmt.Sprintf("%s/events/%d", c.baseURL, eventID)
}

func (c *ResultsClient) ScoresURL(eventID int) string {
	return fmt.Sprintf("%s/events/%d/scores", c.baseURL, eventID)
}

// GetRaw performs a GET and returns the body. Any status outside 2xx is an
// *UpstreamFetchError.
func (c *ResultsClient) GetRaw(ctx context.Context, url string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.Do(req, resp)
	}
	if err != nil {
		return nil, &UpstreamFetchError{URL: url, Err: err}
	}

	if status := resp.StatusCode(); status < 200 || status > 299 {
		return nil, &UpstreamFetchError{URL: url, StatusCode: status}
	}

	// the body buffer is released with resp
	return append([]byte(nil), resp.Body()...), nil
}
