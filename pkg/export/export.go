// Package export renders a batch result for the user: text table, CSV,
// and JSON. Failed usernames appear inline with their error message
// rather than being dropped.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/codetrackr/leetcode-profile-client/pkg/profile"
)

var header = []string{"Username", "Status", "Rating", "Ranking", "Problems Solved", "Badges", "Error"}

// WriteTable renders the batch result as a rounded text table.
func WriteTable(w io.Writer, result profile.BatchResult) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)

	headerRow := make(table.Row, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, r := range result {
		t.AppendRow(table.Row{
			r.Username,
			string(r.Status),
			formatFloat(r.Rating),
			formatInt(r.Ranking),
			formatInt(r.ProblemsSolved),
			r.BadgeList(),
			r.Error,
		})
	}
	t.Render()
}

// WriteCSV writes the batch result as CSV with a header row.
func WriteCSV(w io.Writer, result profile.BatchResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range result {
		row := []string{
			r.Username,
			string(r.Status),
			formatFloat(r.Rating),
			formatInt(r.Ranking),
			formatInt(r.ProblemsSolved),
			r.BadgeList(),
			r.Error,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", r.Username, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the batch result as indented JSON.
func WriteJSON(w io.Writer, result profile.BatchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteRankings prints the top users by rating and by problems solved,
// mirroring the summary the table view is usually read for.
func WriteRankings(w io.Writer, result profile.BatchResult, n int) {
	fmt.Fprintf(w, "Top %d by rating:\n", n)
	for _, r := range profile.TopByRating(result, n) {
		fmt.Fprintf(w, "  %s - rating: %s\n", r.Username, formatFloat(r.Rating))
	}

	fmt.Fprintf(w, "Top %d by problems solved:\n", n)
	for _, r := range profile.TopBySolved(result, n) {
		fmt.Fprintf(w, "  %s - solved: %s\n", r.Username, formatInt(r.ProblemsSolved))
	}
}

func formatFloat(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return "n/a"
	}
	return strconv.Itoa(*v)
}
