// Package profile defines the domain types for fetched LeetCode profiles:
// the per-user statistics, the per-username fetch record, and the ordered
// batch result handed to the output stage.
package profile

import "strings"

// Status discriminates the outcome of a single profile fetch.
type Status string

const (
	// StatusSuccess indicates the profile was fetched and parsed.
	StatusSuccess Status = "success"

	// StatusFailure indicates the fetch failed; the record carries the
	// error message instead of statistics.
	StatusFailure Status = "failure"
)

// Profile holds the public statistics of one LeetCode user.
// Pointer fields distinguish "zero" from "absent in the API response".
type Profile struct {
	// Rating is the user's reputation score.
	Rating *float64

	// Ranking is the user's global ranking.
	Ranking *int

	// Solved is the total number of problems solved.
	Solved *int

	// Badges holds the display names of badges earned by the user.
	Badges []string
}

// Record is the fetch outcome for one username. Exactly one of the
// statistics fields or Error is populated, discriminated by Status.
type Record struct {
	Username       string   `json:"username"`
	Status         Status   `json:"status"`
	Rating         *float64 `json:"rating,omitempty"`
	Ranking        *int     `json:"ranking,omitempty"`
	ProblemsSolved *int     `json:"problems_solved,omitempty"`
	Badges         []string `json:"badges,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// Succeeded builds a Success record from a fetched profile.
func Succeeded(username string, p Profile) Record {
	return Record{
		Username:       username,
		Status:         StatusSuccess,
		Rating:         p.Rating,
		Ranking:        p.Ranking,
		ProblemsSolved: p.Solved,
		Badges:         p.Badges,
	}
}

// Failed builds a Failure record carrying a human-readable error message.
func Failed(username, message string) Record {
	return Record{
		Username: username,
		Status:   StatusFailure,
		Error:    message,
	}
}

// Ok reports whether the record is a Success.
func (r Record) Ok() bool {
	return r.Status == StatusSuccess
}

// BadgeList returns the badges joined for display, or "n/a" when the user
// has none.
func (r Record) BadgeList() string {
	if len(r.Badges) == 0 {
		return "n/a"
	}
	return strings.Join(r.Badges, ", ")
}

// BatchResult is the ordered outcome of one batch invocation: one record
// per input username, in input order.
type BatchResult []Record

// Successes returns the number of Success records.
func (b BatchResult) Successes() int {
	n := 0
	for _, r := range b {
		if r.Ok() {
			n++
		}
	}
	return n
}

// Failures returns the number of Failure records.
func (b BatchResult) Failures() int {
	return len(b) - b.Successes()
}

// AllFailed reports whether every record in a non-empty batch is a
// Failure. The caller decides whether that is fatal.
func (b BatchResult) AllFailed() bool {
	return len(b) > 0 && b.Successes() == 0
}
