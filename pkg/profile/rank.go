package profile

import "sort"

// TopByRating returns up to n Success records ordered by rating,
// highest first. Records without a rating sort last.
func TopByRating(b BatchResult, n int) []Record {
	return top(b, n, func(r Record) (float64, bool) {
		if r.Rating == nil {
			return 0, false
		}
		return *r.Rating, true
	})
}

// TopBySolved returns up to n Success records ordered by problems
// solved, highest first. Records without a solved count sort last.
func TopBySolved(b BatchResult, n int) []Record {
	return top(b, n, func(r Record) (float64, bool) {
		if r.ProblemsSolved == nil {
			return 0, false
		}
		return float64(*r.ProblemsSolved), true
	})
}

func top(b BatchResult, n int, key func(Record) (float64, bool)) []Record {
	ranked := make([]Record, 0, len(b))
	for _, r := range b {
		if r.Ok() {
			ranked = append(ranked, r)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		vi, oki := key(ranked[i])
		vj, okj := key(ranked[j])
		if oki != okj {
			return oki
		}
		return vi > vj
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
