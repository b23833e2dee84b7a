// Package feedclient drives repeated fetches against the feed API,
// accumulating pages into one flat ordered list for a renderer to consume.
// One Session owns one logical feed session; the renderer reads its view but
// never mutates it.
package feedclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"scrollforcause/platform/internal/feed"
)

const (
	feedEndpoint   = "/api/v1/feed"
	requestTimeout = 30 * time.Second

	defaultLimit      = 10
	defaultMaxRetries = 3
	initialBackoff    = 500 * time.Millisecond
	maxBackoff        = 5 * time.Second
)

// apiResponse mirrors the server's feed page envelope.
type apiResponse struct {
	Data    []feed.Entry `json:"data"`
	Cursor  *string      `json:"cursor"`
	HasMore bool         `json:"hasMore"`
}

// View is a consistent snapshot of the session state.
type View struct {
	Items              []feed.Entry
	IsLoading          bool
	IsSuccess          bool
	IsError            bool
	Err                error
	HasNextPage        bool
	IsFetchingNextPage bool
}

// Option configures a Session.
type Option func(*Session)

// WithLimit sets the page size requested from the server.
func WithLimit(limit int) Option {
	return func(s *Session) { s.limit = limit }
}

// WithHTTPClient overrides the HTTP client used for fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) { s.http = c }
}

// WithMaxRetries bounds retry attempts for transient failures.
func WithMaxRetries(n uint64) Option {
	return func(s *Session) { s.maxRetries = n }
}

// WithLogger attaches a logger to the session.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) { s.log = logger }
}

// Session is one feed consumption session. Pages are fetched strictly in
// sequence: page N+1 is only ever requested with the cursor page N returned,
// and at most one fetch is in flight at a time.
type Session struct {
	baseURL    string
	http       *http.Client
	limit      int
	maxRetries uint64
	log        zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	items    []feed.Entry
	cursor   *string
	hasMore  bool
	loaded   bool // first page landed successfully
	loading  bool // first fetch in flight
	fetching bool // next-page fetch in flight
	lastErr  error
}

// NewSession creates a feed session against the given API base URL.
func NewSession(baseURL string, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		baseURL:    baseURL,
		http:       &http.Client{Timeout: requestTimeout},
		limit:      defaultLimit,
		maxRetries: defaultMaxRetries,
		log:        zerolog.Nop(),
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the first page. On failure no partial items are kept; calling
// Start again retries from the beginning.
func (s *Session) Start() error {
	s.mu.Lock()
	if s.loading || s.loaded {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()

	resp, err := s.fetchWithRetry(nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if s.ctx.Err() != nil {
		// Session torn down while the fetch was in flight; discard.
		return s.ctx.Err()
	}
	if err != nil {
		s.lastErr = err
		return err
	}

	s.items = appendEntries(nil, resp.Data)
	s.cursor = resp.Cursor
	s.hasMore = resp.HasMore
	s.loaded = true
	return nil
}

// FetchNextPage loads the next page and appends it to the item list.
// It is a no-op when no further page exists or a fetch is already in
// flight: concurrent calls never double-append or issue two requests for
// the same cursor.
func (s *Session) FetchNextPage() error {
	s.mu.Lock()
	if !s.loaded || !s.hasMore || s.fetching {
		s.mu.Unlock()
		return nil
	}
	cursor := s.cursor
	s.fetching = true
	s.mu.Unlock()

	resp, err := s.fetchWithRetry(cursor)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetching = false
	if s.ctx.Err() != nil {
		return s.ctx.Err()
	}
	if err != nil {
		// Loaded items stay; only the trailing fetch is marked failed.
		// The caller may call FetchNextPage again to retry from the
		// same cursor.
		s.lastErr = err
		return err
	}

	s.items = appendEntries(s.items, resp.Data)
	s.cursor = resp.Cursor
	s.hasMore = resp.HasMore
	s.lastErr = nil
	return nil
}

// Close tears down the session and abandons any in-flight fetch. A late
// response is discarded, never applied.
func (s *Session) Close() {
	s.cancel()
}

// View returns a snapshot of the session. The item slice is never mutated
// after being returned; each appended page produces a fresh list.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Items:              s.items,
		IsLoading:          s.loading,
		IsSuccess:          s.loaded,
		IsError:            s.lastErr != nil,
		Err:                s.lastErr,
		HasNextPage:        s.hasMore,
		IsFetchingNextPage: s.fetching,
	}
}

// fetchWithRetry fetches one page, retrying transient failures with
// exponential backoff. Validation failures are never retried.
func (s *Session) fetchWithRetry(cursor *string) (apiResponse, error) {
	var resp apiResponse

	operation := func() error {
		var fetchErr error
		resp, fetchErr = s.fetchPage(cursor)
		if fetchErr == nil {
			return nil
		}
		if !isRetriableError(fetchErr) {
			s.log.Warn().Err(fetchErr).Msg("Non-retriable fetch error")
			return backoff.Permanent(fetchErr)
		}
		s.log.Warn().Err(fetchErr).Msg("Transient fetch error, will retry")
		return fetchErr
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = initialBackoff
	expBackoff.MaxInterval = maxBackoff

	policy := backoff.WithContext(backoff.WithMaxRetries(expBackoff, s.maxRetries), s.ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return apiResponse{}, err
	}
	return resp, nil
}

// fetchPage makes a single HTTP request and returns the parsed page.
func (s *Session) fetchPage(cursor *string) (apiResponse, error) {
	var apiResp apiResponse

	reqURL, err := s.buildRequestURL(cursor)
	if err != nil {
		return apiResp, err
	}

	reqCtx, cancelReq := context.WithTimeout(s.ctx, requestTimeout)
	defer cancelReq()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		return apiResp, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return apiResp, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return apiResp, fmt.Errorf("failed to read response body (status %d): %w", resp.StatusCode, readErr)
	}

	if resp.StatusCode != http.StatusOK {
		return apiResp, &statusError{code: resp.StatusCode, body: string(bodyBytes)}
	}

	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return apiResp, fmt.Errorf("failed to decode JSON response: %w", err)
	}

	return apiResp, nil
}

// buildRequestURL constructs the URL with appropriate query parameters.
func (s *Session) buildRequestURL(cursor *string) (string, error) {
	baseURL, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base API URL: %w", err)
	}

	endpointURL, err := baseURL.Parse(feedEndpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint path: %w", err)
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(s.limit))
	if cursor != nil && *cursor != "" {
		query.Set("cursor", *cursor)
	}

	endpointURL.RawQuery = query.Encode()
	return endpointURL.String(), nil
}

// appendEntries builds a fresh list so previously returned views are never
// mutated underneath a consumer.
func appendEntries(existing, page []feed.Entry) []feed.Entry {
	out := make([]feed.Entry, 0, len(existing)+len(page))
	out = append(out, existing...)
	out = append(out, page...)
	return out
}

// statusError is a non-200 API response.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("API returned non-200 status: %d - Body: %s", e.code, e.body)
}

// isRetriableError determines if an error should be retried
func isRetriableError(err error) bool {
	var statusErr *statusError
	if errors.As(err, &statusErr) {
		// Retry on HTTP 5xx server errors and HTTP 429 Too Many Requests;
		// 4xx means the request itself is wrong and retrying cannot help.
		return statusErr.code >= 500 || statusErr.code == http.StatusTooManyRequests
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	return false
}
