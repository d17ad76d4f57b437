package recommend

import (
	"sort"
)

// rank orders candidates by descending score. Ties break ascending by
// user id, a deterministic choice so identical pools always paginate
// identically.
func rank(candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ID < candidates[j].ID
	})
}
