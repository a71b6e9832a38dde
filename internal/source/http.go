package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPSource fetches word chunks from a JSON dictionary service:
// GET {base}/words/{prefix} and GET {base}/metadata.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource creates a source against the given base URL with a
// per-request timeout
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type wordsResponse struct {
	Prefix string   `json:"prefix"`
	Words  []string `json:"words"`
}

// FetchWords returns every word the remote knows for the given prefix
func (s *HTTPSource) FetchWords(ctx context.Context, prefix string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/words/%s", s.baseURL, url.PathEscape(prefix))

	var resp wordsResponse
	if err := s.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("fetch words for prefix %q: %w", prefix, err)
	}
	return resp.Words, nil
}

// FetchMetadata returns the remote dictionary's metadata
func (s *HTTPSource) FetchMetadata(ctx context.Context) (Metadata, error) {
	var meta Metadata
	if err := s.getJSON(ctx, s.baseURL+"/metadata", &meta); err != nil {
		return Metadata{}, fmt.Errorf("fetch metadata: %w", err)
	}
	return meta, nil
}

func (s *HTTPSource) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a little of the body for error context
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
