// Package api provides the HTTP client for the Alfa LeetCode API with
// error classification, metrics, and defensive response parsing.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codetrackr/leetcode-profile-client/pkg/profile"
)

// DefaultBaseURL is the public Alfa LeetCode API instance.
const DefaultBaseURL = "https://alfa-leetcode-api.onrender.com"

// Prometheus metrics for profile API operations.
var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leetcode_api_requests_total",
		Help: "Total profile API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "leetcode_api_request_duration_seconds",
		Help:    "Profile API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	apiErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leetcode_api_errors_total",
		Help: "Total profile API errors by class",
	}, []string{"class"})
)

// Config holds the client configuration.
type Config struct {
	// BaseURL of the Alfa LeetCode API instance.
	BaseURL string

	// User-Agent header sent with every request.
	UserAgent string

	// Timeout per HTTP request.
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: "leetcode-profile-client/0.1.0",
		Timeout:   10 * time.Second,
	}
}

// Client fetches public profile statistics for single usernames. The
// batch fetcher fans it out across a username list.
type Client struct {
	http   *resty.Client
	config Config
	logger zerolog.Logger
}

// New creates a new profile API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive (got %s)", cfg.Timeout)
	}

	logger := log.With().Str("component", "leetcode-api").Logger()

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		config: cfg,
		logger: logger,
	}, nil
}

// errorPayload is the error envelope the platform returns for unknown
// users and malformed requests.
type errorPayload struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (p errorPayload) message() string {
	if len(p.Errors) == 0 || p.Errors[0].Message == "" {
		return "unknown API error"
	}
	return p.Errors[0].Message
}

type profilePayload struct {
	errorPayload
	Reputation *float64 `json:"reputation"`
	Ranking    *int     `json:"ranking"`
}

type solvedPayload struct {
	errorPayload
	SolvedProblem *int `json:"solvedProblem"`
}

type badgesPayload struct {
	errorPayload
	Badges []struct {
		DisplayName string `json:"displayName"`
	} `json:"badges"`
}

// FetchProfile retrieves the full statistics of one user: profile,
// solved count, and badges. All three endpoints must succeed; any
// failure is returned as an *APIError.
func (c *Client) FetchProfile(ctx context.Context, username string) (profile.Profile, error) {
	var prof profilePayload
	if err := c.get(ctx, username, "profile", "/"+username, &prof); err != nil {
		return profile.Profile{}, err
	}

	var solved solvedPayload
	if err := c.get(ctx, username, "solved", "/"+username+"/solved", &solved); err != nil {
		return profile.Profile{}, err
	}

	var badges badgesPayload
	if err := c.get(ctx, username, "badges", "/"+username+"/badges", &badges); err != nil {
		return profile.Profile{}, err
	}

	result := profile.Profile{
		Rating:  prof.Reputation,
		Ranking: prof.Ranking,
		Solved:  solved.SolvedProblem,
	}
	for _, b := range badges.Badges {
		if b.DisplayName != "" {
			result.Badges = append(result.Badges, b.DisplayName)
		}
	}

	c.logger.Debug().
		Str("username", username).
		Int("badges", len(result.Badges)).
		Msg("Profile fetched")

	return result, nil
}

// envelope is implemented by all payload types via errorPayload.
type envelope interface {
	hasErrors() bool
	message() string
}

// get performs one GET against the profile API and decodes the body
// into out. Missing JSON fields are tolerated; only an undecodable body
// or an error envelope fails the request.
func (c *Client) get(ctx context.Context, username, endpoint, path string, out envelope) error {
	start := time.Now()
	defer func() {
		apiRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	resp, err := c.http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		apiErrorsTotal.WithLabelValues(string(ClassNetwork)).Inc()
		apiRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Warn().
			Err(err).
			Str("username", username).
			Str("endpoint", endpoint).
			Msg("Request failed")
		return &APIError{
			Username: username,
			Endpoint: endpoint,
			Class:    ClassNetwork,
			Message:  err.Error(),
			Err:      err,
		}
	}

	status := resp.StatusCode()
	apiRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", status)).Inc()

	if status >= 400 {
		class := classifyStatus(status)
		apiErrorsTotal.WithLabelValues(string(class)).Inc()
		c.logger.Warn().
			Str("username", username).
			Str("endpoint", endpoint).
			Int("status", status).
			Str("error_class", string(class)).
			Msg("Request error")

		apiErr := &APIError{
			Username:   username,
			Endpoint:   endpoint,
			StatusCode: status,
			Class:      class,
			Message:    http.StatusText(status),
		}
		if class == ClassNotFound {
			apiErr.Message = fmt.Sprintf("user %q not found", username)
			apiErr.Err = ErrUserNotFound
		}
		return apiErr
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		apiErrorsTotal.WithLabelValues(string(ClassParse)).Inc()
		return &APIError{
			Username:   username,
			Endpoint:   endpoint,
			StatusCode: status,
			Class:      ClassParse,
			Message:    "failed to parse JSON response",
			Err:        err,
		}
	}

	// The platform reports unknown users inside an error envelope,
	// sometimes with a 200 status.
	if out.hasErrors() {
		apiErrorsTotal.WithLabelValues(string(ClassNotFound)).Inc()
		return &APIError{
			Username:   username,
			Endpoint:   endpoint,
			StatusCode: status,
			Class:      ClassNotFound,
			Message:    out.message(),
			Err:        ErrUserNotFound,
		}
	}

	return nil
}

func (p errorPayload) hasErrors() bool {
	return len(p.Errors) > 0
}

// SetHTTPClient replaces the underlying resty client (for testing).
func (c *Client) SetHTTPClient(client *resty.Client) {
	c.http = client
}
