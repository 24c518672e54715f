package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/codetrackr/leetcode-profile-client/pkg/api"
	"github.com/codetrackr/leetcode-profile-client/pkg/profile"
)

// MaxBatchSize is the largest username list accepted per invocation.
const MaxBatchSize = 100

// Validation errors, surfaced before any network call.
var (
	// ErrEmptyBatch is returned for an empty username list.
	ErrEmptyBatch = errors.New("username list is empty")

	// ErrBatchTooLarge is returned when the list exceeds MaxBatchSize.
	ErrBatchTooLarge = fmt.Errorf("username list exceeds %d entries", MaxBatchSize)

	// ErrBlankUsername is returned when an entry is empty or whitespace.
	ErrBlankUsername = errors.New("username must be a non-empty string")
)

// Prometheus metrics for batch operations.
var (
	batchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leetcode_batches_total",
		Help: "Total batch fetch invocations",
	})

	batchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "leetcode_batch_size",
		Help:    "Number of usernames per batch",
		Buckets: []float64{1, 5, 10, 25, 50, 100},
	})

	batchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "leetcode_batch_duration_seconds",
		Help:    "Wall-clock duration of a full batch fetch",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	})

	batchFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leetcode_batch_record_failures_total",
		Help: "Total per-username failures across all batches",
	})
)

// ProfileFetcher is the interface the API client implements for
// single-username fetching.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, username string) (profile.Profile, error)
}

// Config holds batch fetcher configuration.
type Config struct {
	// MaxConcurrency is the maximum number of fetches in flight.
	// Kept low to stay under the platform's informal rate tolerance.
	MaxConcurrency int

	// Timeout per username fetch.
	Timeout time.Duration

	// BatchTimeout bounds the whole batch. Zero means no bound; any
	// username still outstanding at the deadline becomes a Failure
	// record with a timeout message.
	BatchTimeout time.Duration
}

// DefaultConfig returns safe defaults for the public API instance.
func DefaultConfig() Config {
	return Config{
		MaxConcurrency: 5,
		Timeout:        10 * time.Second,
		BatchTimeout:   0,
	}
}

// Fetcher fans a username list out across a bounded worker pool and
// reassembles the results in input order.
type Fetcher struct {
	fetcher ProfileFetcher
	config  Config
}

// NewFetcher creates a batch fetcher. Zero config fields fall back to
// defaults.
func NewFetcher(fetcher ProfileFetcher, config Config) *Fetcher {
	defaults := DefaultConfig()
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = defaults.MaxConcurrency
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}

	return &Fetcher{
		fetcher: fetcher,
		config:  config,
	}
}

// task tags a username with its input index so the result slice can be
// filled regardless of completion order.
type task struct {
	index    int
	username string
}

// Fetch retrieves profiles for every username in the list and returns
// one record per input, in input order. Per-username failures become
// Failure records; only input validation fails the call itself.
func (f *Fetcher) Fetch(ctx context.Context, usernames []string) (profile.BatchResult, error) {
	if err := validate(usernames); err != nil {
		return nil, err
	}

	start := time.Now()
	batchesTotal.Inc()
	batchSize.Observe(float64(len(usernames)))

	if f.config.BatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.config.BatchTimeout)
		defer cancel()
	}

	log.Info().
		Int("usernames", len(usernames)).
		Int("workers", f.config.MaxConcurrency).
		Msg("Starting batch profile fetch")

	// Each task writes exactly once at its own index.
	results := make(profile.BatchResult, len(usernames))

	queue := make(chan task, len(usernames))
	for i, username := range usernames {
		queue <- task{index: i, username: username}
	}
	close(queue)

	var wg sync.WaitGroup
	for w := 0; w < f.config.MaxConcurrency; w++ {
		wg.Add(1)
		go f.worker(ctx, queue, results, &wg, w)
	}
	wg.Wait()

	// Tasks never started before a batch timeout leave their slot
	// empty; fill them as timed-out failures.
	for i, r := range results {
		if r.Status == "" {
			results[i] = profile.Failed(usernames[i], timeoutMessage(usernames[i], ctx.Err()))
		}
	}

	failures := results.Failures()
	if failures > 0 {
		batchFailuresTotal.Add(float64(failures))
	}

	log.Info().
		Int("usernames", len(usernames)).
		Int("successes", results.Successes()).
		Int("failures", failures).
		Dur("duration", time.Since(start)).
		Msg("Batch fetch complete")
	batchDuration.Observe(time.Since(start).Seconds())

	return results, nil
}

// worker drains the task queue, fetching one username at a time.
func (f *Fetcher) worker(ctx context.Context, queue <-chan task, results profile.BatchResult, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()

	for t := range queue {
		select {
		case <-ctx.Done():
			log.Debug().
				Int("worker_id", workerID).
				Msg("Worker stopping (context cancelled)")
			return
		default:
		}

		taskCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
		p, err := f.fetcher.FetchProfile(taskCtx, t.username)
		cancel()

		if err != nil {
			log.Warn().
				Err(err).
				Int("worker_id", workerID).
				Str("username", t.username).
				Msg("Profile fetch failed")
			results[t.index] = profile.Failed(t.username, failureMessage(t.username, err))
			continue
		}

		results[t.index] = profile.Succeeded(t.username, p)
	}
}

// validate enforces the 1..MaxBatchSize contract before any network call.
func validate(usernames []string) error {
	if len(usernames) == 0 {
		return ErrEmptyBatch
	}
	if len(usernames) > MaxBatchSize {
		return fmt.Errorf("%w (got %d)", ErrBatchTooLarge, len(usernames))
	}
	for i, username := range usernames {
		if strings.TrimSpace(username) == "" {
			return fmt.Errorf("%w (entry %d)", ErrBlankUsername, i)
		}
	}
	return nil
}

// failureMessage renders a per-username error for the output stage.
func failureMessage(username string, err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Timeout() {
			return timeoutMessage(username, err)
		}
		return apiErr.Error()
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return timeoutMessage(username, err)
	}
	return fmt.Sprintf("%s: fetch failed: %v", username, err)
}

func timeoutMessage(username string, err error) string {
	if err == nil {
		err = context.DeadlineExceeded
	}
	return fmt.Sprintf("%s: fetch timed out: %v", username, err)
}
