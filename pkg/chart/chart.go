// Package chart renders a batch result as a PNG bar chart of problems
// solved per user.
package chart

import (
	"errors"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/codetrackr/leetcode-profile-client/pkg/profile"
)

// ErrNoData is returned when no record carries a problems-solved count.
var ErrNoData = errors.New("no successful records to chart")

// Render writes a PNG bar chart to w. Failure records and records
// without a solved count are skipped; users are ordered by solved
// count, highest first.
func Render(w io.Writer, result profile.BatchResult) error {
	ranked := profile.TopBySolved(result, 0)

	bars := make([]chart.Value, 0, len(ranked))
	for _, r := range ranked {
		if r.ProblemsSolved == nil {
			continue
		}
		bars = append(bars, chart.Value{
			Label: r.Username,
			Value: float64(*r.ProblemsSolved),
		})
	}
	if len(bars) == 0 {
		return ErrNoData
	}

	graph := chart.BarChart{
		Title:    "Problems Solved by User",
		Width:    barChartWidth(len(bars)),
		Height:   512,
		BarWidth: 40,
		Bars:     bars,
		XAxis:    chart.Style{TextRotationDegrees: 45},
	}

	return graph.Render(chart.PNG, w)
}

// barChartWidth scales the canvas with the user count so labels stay
// readable.
func barChartWidth(bars int) int {
	const minWidth = 512
	width := bars * 80
	if width < minWidth {
		return minWidth
	}
	return width
}
