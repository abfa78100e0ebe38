package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTP status code constants.
const (
	statusOK       = 200
	statusCreated  = 201
	statusConflict = 409
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitVotes submits votes concurrently using a worker pool.
func submitVotes(ctx context.Context, config *Config, votes []voteRequest, stats *Stats) error {
	log.Printf("submitting %d votes with %d workers...", len(votes), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/votes"

	var (
		successful int64
		duplicate  int64
		failed     int64
		submitted  int64
	)

	voteChan := make(chan voteRequest, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for vote := range voteChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSingleVote(ctx, client, url, vote)

					atomic.AddInt64(&submitted, 1)
					switch result {
					case "success":
						atomic.AddInt64(&successful, 1)
					case "duplicate":
						atomic.AddInt64(&duplicate, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}

					if config.Verbose {
						total := atomic.LoadInt64(&submitted)
						if total%1000 == 0 {
							log.Printf("progress: %d/%d submitted (success: %d, duplicate: %d, failed: %d)",
								total, len(votes),
								atomic.LoadInt64(&successful),
								atomic.LoadInt64(&duplicate),
								atomic.LoadInt64(&failed))
						}
					}
				}
			}
		}()
	}

	go func() {
		defer close(voteChan)
		for _, vote := range votes {
			select {
			case <-ctx.Done():
				return
			case voteChan <- vote:
			}
		}
	}()

	wg.Wait()

	stats.VotesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.VotesSuccessful = int(atomic.LoadInt64(&successful))
	stats.VotesDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.VotesFailed = int(atomic.LoadInt64(&failed))

	log.Printf("vote submission completed: successful=%d duplicate=%d failed=%d",
		stats.VotesSuccessful, stats.VotesDuplicate, stats.VotesFailed)

	return nil
}

// submitSingleVote submits a single vote and classifies the outcome.
func submitSingleVote(ctx context.Context, client *HTTPClient, url string, vote voteRequest) string {
	resp, err := client.Post(ctx, url, vote)
	if err != nil {
		return "failed"
	}
	if _, err := readResponseBody(resp); err != nil {
		return "failed"
	}

	switch resp.StatusCode {
	case statusCreated:
		return "success"
	case statusConflict:
		return "duplicate"
	default:
		return "failed"
	}
}
