package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/codetrackr/leetcode-profile-client/internal/testutil"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.Timeout = 5 * time.Second

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return client
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid config",
			config:      DefaultConfig(),
			expectError: false,
		},
		{
			name: "empty base URL",
			config: Config{
				UserAgent: "TestApp/1.0.0",
				Timeout:   time.Second,
			},
			expectError: true,
			errorMsg:    "base URL is required",
		},
		{
			name: "empty user agent",
			config: Config{
				BaseURL: DefaultBaseURL,
				Timeout: time.Second,
			},
			expectError: true,
			errorMsg:    "user-agent is required",
		},
		{
			name: "non-positive timeout",
			config: Config{
				BaseURL:   DefaultBaseURL,
				UserAgent: "TestApp/1.0.0",
			},
			expectError: true,
			errorMsg:    "timeout must be positive (got 0s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.config)

			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error but got nil")
				}
				if tt.errorMsg != "" && err.Error() != tt.errorMsg {
					t.Errorf("Error message = %q, want %q", err.Error(), tt.errorMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if client == nil {
				t.Fatal("Expected client, got nil")
			}
		})
	}
}

func TestFetchProfile_Success(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.SetUser("alice", testutil.UserFixture{
		Reputation: 250,
		Ranking:    12345,
		Solved:     421,
		Badges:     []string{"Annual Badge", "100 Days Badge"},
	})

	client := newTestClient(t, mock.URL())
	p, err := client.FetchProfile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("FetchProfile() failed: %v", err)
	}

	if p.Rating == nil || *p.Rating != 250 {
		t.Errorf("Rating = %v, want 250", p.Rating)
	}
	if p.Ranking == nil || *p.Ranking != 12345 {
		t.Errorf("Ranking = %v, want 12345", p.Ranking)
	}
	if p.Solved == nil || *p.Solved != 421 {
		t.Errorf("Solved = %v, want 421", p.Solved)
	}
	if len(p.Badges) != 2 || p.Badges[0] != "Annual Badge" {
		t.Errorf("Badges = %v, want [Annual Badge, 100 Days Badge]", p.Badges)
	}

	// One request per endpoint: profile, solved, badges.
	if got := mock.GetRequestCount(); got != 3 {
		t.Errorf("RequestCount = %d, want 3", got)
	}
}

func TestFetchProfile_MissingFields(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	// Sparse payloads must parse; absent fields stay nil.
	mock.SetResponse("/ghostly", testutil.MockResponse{StatusCode: http.StatusOK, Body: `{}`})
	mock.SetResponse("/ghostly/solved", testutil.MockResponse{StatusCode: http.StatusOK, Body: `{}`})
	mock.SetResponse("/ghostly/badges", testutil.MockResponse{StatusCode: http.StatusOK, Body: `{"badges": [{"id": "x"}]}`})

	client := newTestClient(t, mock.URL())
	p, err := client.FetchProfile(context.Background(), "ghostly")
	if err != nil {
		t.Fatalf("FetchProfile() failed: %v", err)
	}

	if p.Rating != nil || p.Ranking != nil || p.Solved != nil {
		t.Errorf("expected all statistics absent, got %+v", p)
	}
	if len(p.Badges) != 0 {
		t.Errorf("Badges = %v, want empty (no displayName)", p.Badges)
	}
}

func TestFetchProfile_NotFound(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	client := newTestClient(t, mock.URL())
	_, err := client.FetchProfile(context.Background(), "does_not_exist")
	if err == nil {
		t.Fatal("Expected error for unknown user")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Class != ClassNotFound {
		t.Errorf("Class = %q, want %q", apiErr.Class, ClassNotFound)
	}
	if !errors.Is(err, ErrUserNotFound) {
		t.Error("errors.Is(err, ErrUserNotFound) = false, want true")
	}
}

func TestFetchProfile_NotFoundEnvelope(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	// The platform sometimes reports unknown users with 200 + errors array.
	mock.SetResponse("/ghost", testutil.NewNotFoundEnvelope())

	client := newTestClient(t, mock.URL())
	_, err := client.FetchProfile(context.Background(), "ghost")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Class != ClassNotFound {
		t.Errorf("Class = %q, want %q", apiErr.Class, ClassNotFound)
	}
	if apiErr.Message != "That user does not exist." {
		t.Errorf("Message = %q, want platform message", apiErr.Message)
	}
}

func TestFetchProfile_RateLimited(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.SetResponse("/busy", testutil.NewRateLimitResponse())

	client := newTestClient(t, mock.URL())
	_, err := client.FetchProfile(context.Background(), "busy")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Class != ClassRateLimit {
		t.Errorf("Class = %q, want %q", apiErr.Class, ClassRateLimit)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", apiErr.StatusCode)
	}
}

func TestFetchProfile_ServerError(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.SetResponse("/broken", testutil.NewServerErrorResponse())

	client := newTestClient(t, mock.URL())
	_, err := client.FetchProfile(context.Background(), "broken")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Class != ClassServer {
		t.Errorf("Class = %q, want %q", apiErr.Class, ClassServer)
	}
}

func TestFetchProfile_MalformedBody(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.SetResponse("/html", testutil.NewMalformedResponse())

	client := newTestClient(t, mock.URL())
	_, err := client.FetchProfile(context.Background(), "html")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Class != ClassParse {
		t.Errorf("Class = %q, want %q", apiErr.Class, ClassParse)
	}
}

func TestFetchProfile_SiblingEndpointFailure(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	// Profile endpoint works, solved endpoint does not: the whole user
	// fetch must fail.
	mock.SetUser("flaky", testutil.UserFixture{Solved: 10})
	mock.SetResponse("/flaky/solved", testutil.NewServerErrorResponse())

	client := newTestClient(t, mock.URL())
	_, err := client.FetchProfile(context.Background(), "flaky")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Endpoint != "solved" {
		t.Errorf("Endpoint = %q, want %q", apiErr.Endpoint, "solved")
	}
}

func TestFetchProfile_ContextTimeout(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()

	mock.SetUserDelay("slow", testutil.UserFixture{Solved: 1}, 300*time.Millisecond)

	client := newTestClient(t, mock.URL())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FetchProfile(ctx, "slow")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Class != ClassNetwork {
		t.Errorf("Class = %q, want %q", apiErr.Class, ClassNetwork)
	}
	if !apiErr.Timeout() {
		t.Error("Timeout() = false, want true")
	}
}
