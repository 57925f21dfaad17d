package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/google/uuid"
)

const maxBodySize = 10 << 20

var errEmptyBody = errors.New("empty response body")

// HTTPClient talks to the job-board REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for baseURL. A zero timeout leaves failure
// detection to the transport. tokens may be nil for anonymous use.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: newAuthTransport(http.DefaultTransport, tokens),
		},
		tokens: tokens,
		log:    log,
	}, nil
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) ListOpportunities(ctx context.Context) ([]models.Job, error) {
	return c.searchJobs(ctx, nil, "Failed to fetch opportunities")
}

// SearchOpportunities sends the query to the server and additionally keeps
// only jobs whose title contains it, since the server may ignore q.
func (c *HTTPClient) SearchOpportunities(ctx context.Context, query string) ([]models.Job, error) {
	jobs, err := c.searchJobs(ctx, url.Values{"q": {query}}, "Failed to search opportunities")
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.MatchesTitle(query) {
			filtered = append(filtered, j)
		}
	}
	return filtered, nil
}

func (c *HTTPClient) searchJobs(ctx context.Context, query url.Values, fallback string) ([]models.Job, error) {
	r, err := c.send(ctx, http.MethodGet, "/opportunities/search", query, nil)
	if err != nil {
		return nil, err
	}
	if !r.ok() {
		return nil, mapStatus(r.status, ErrNotFound)
	}

	env, err := decode[[]models.Job](r)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, apiError(env.Message, fallback)
	}
	if env.Data == nil {
		return []models.Job{}, nil
	}
	return *env.Data, nil
}

func (c *HTTPClient) GetOpportunity(ctx context.Context, id string) (*models.Job, error) {
	if id == "" {
		return nil, ErrJobIDRequired
	}

	r, err := c.send(ctx, http.MethodGet, "/opportunities/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	if !r.ok() {
		return nil, mapStatus(r.status, ErrJobNotFound)
	}

	env, err := decode[models.Job](r)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, apiError(env.Message, "Failed to fetch job details")
	}
	if env.Data == nil {
		return nil, ErrNoJobData
	}
	return env.Data, nil
}

func (c *HTTPClient) ListBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	if tokenOf(c.tokens) == "" {
		return nil, ErrAuthenticationRequired
	}

	r, err := c.send(ctx, http.MethodGet, "/bookmarks", nil, nil)
	if err != nil {
		return nil, err
	}
	if !r.ok() {
		return nil, mapStatus(r.status, ErrNotFound)
	}

	env, err := decode[[]models.Bookmark](r)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, apiError(env.Message, "Failed to fetch bookmarks")
	}
	if env.Data == nil {
		return []models.Bookmark{}, nil
	}
	return *env.Data, nil
}

func (c *HTTPClient) AddBookmark(ctx context.Context, jobID string) error {
	return c.changeBookmark(ctx, http.MethodPost, jobID, struct{}{}, "Failed to bookmark job")
}

func (c *HTTPClient) RemoveBookmark(ctx context.Context, jobID string) error {
	return c.changeBookmark(ctx, http.MethodDelete, jobID, nil, "Failed to remove bookmark")
}

func (c *HTTPClient) changeBookmark(ctx context.Context, method, jobID string, payload any, fallback string) error {
	if tokenOf(c.tokens) == "" {
		return ErrAuthenticationRequired
	}
	if jobID == "" {
		return ErrJobIDRequired
	}

	r, err := c.send(ctx, method, "/bookmarks/"+url.PathEscape(jobID), nil, payload)
	if err != nil {
		return err
	}
	if !r.ok() {
		switch {
		case method == http.MethodPost && r.status == http.StatusConflict:
			return ErrAlreadyBookmarked
		case method == http.MethodPost:
			return mapStatus(r.status, ErrJobNotFound)
		default:
			return mapStatus(r.status, ErrBookmarkNotFound)
		}
	}

	env, err := decode[json.RawMessage](r)
	if errors.Is(err, errEmptyBody) {
		return nil
	}
	if err != nil {
		return err
	}
	if !env.Success {
		return apiError(env.Message, fallback)
	}
	return nil
}

func (c *HTTPClient) Signup(ctx context.Context, form models.SignupForm) (string, error) {
	r, err := c.send(ctx, http.MethodPost, "/signup", nil, form)
	if err != nil {
		return "", err
	}

	env, decErr := decode[models.Session](r)
	if !r.ok() {
		return "", rejection(r.status, env)
	}
	if decErr != nil {
		return "", decErr
	}
	if !env.Success {
		return "", apiError(env.Message, "Signup failed")
	}
	return env.Message, nil
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	r, err := c.send(ctx, http.MethodPost, "/login", nil, creds)
	if err != nil {
		return nil, err
	}
	if r.status == http.StatusUnauthorized {
		return nil, ErrInvalidCredentials
	}

	env, decErr := decode[models.Session](r)
	if !r.ok() {
		return nil, rejection(r.status, env)
	}
	if decErr != nil {
		return nil, decErr
	}
	if !env.Success || env.Data == nil || env.Data.AccessToken == "" {
		return nil, apiError(env.Message, "Login failed")
	}
	return env.Data, nil
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, req models.VerifyEmailRequest) (string, error) {
	r, err := c.send(ctx, http.MethodPost, "/verify-email", nil, req)
	if err != nil {
		return "", err
	}
	if r.status == http.StatusBadRequest {
		return "", ErrInvalidVerificationCode
	}

	env, decErr := decode[models.Session](r)
	if !r.ok() {
		return "", rejection(r.status, env)
	}
	if decErr != nil {
		return "", decErr
	}
	if !env.Success {
		return "", apiError(env.Message, "Email verification failed")
	}
	return env.Message, nil
}

type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

func (c *HTTPClient) send(ctx context.Context, method, path string, query url.Values, payload any) (*response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set(common.ContentTypeHeaderName, common.JSONContentType)

	log := c.log.With("request_id", requestID, "method", method, "path", path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, mapTransportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return nil, mapTransportError(ctx, err)
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode, "duration", time.Since(start))
	return &response{status: resp.StatusCode, body: data}, nil
}

func decode[T any](r *response) (*models.Envelope[T], error) {
	if len(bytes.TrimSpace(r.body)) == 0 {
		return nil, errEmptyBody
	}
	var env models.Envelope[T]
	if err := json.Unmarshal(r.body, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &env, nil
}

// rejection reports a failed auth request: the server's own message when it
// sent one, the bare status otherwise.
func rejection[T any](status int, env *models.Envelope[T]) error {
	if env != nil && env.Message != "" {
		return &APIError{Message: env.Message}
	}
	return &HTTPError{Status: status}
}
