package core

import (
	"sort"

	"github.com/huangsam/decider/schema"
)

// RankResults sorts results by total score in descending order.
// Ties keep their insertion order.
func RankResults(results []schema.Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})
}

// TopResults returns at most limit results from an already ranked slice.
// A non-positive limit returns all of them.
func TopResults(results []schema.Result, limit int) []schema.Result {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
