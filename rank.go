package main

import "sort"

// Recommendation listing bounds, mirrored from the original candidate slider.
const (
	defaultRankLimit = 5
	maxRankLimit     = 20
)

// rankCandidates scores every profile in pool against me, drops rejected and
// non-positive results, and returns at most limit candidates ordered by score
// descending. Ties break on candidate id ascending so the ordering is
// deterministic. An empty result just means nobody fits right now.
func rankCandidates(me Profile, pool []Profile, limit int, mannerOf mannerLookup) []RankedCandidate {
	if limit <= 0 {
		limit = defaultRankLimit
	}
	if limit > maxRankLimit {
		limit = maxRankLimit
	}

	ranked := make([]RankedCandidate, 0, len(pool))
	for _, candidate := range pool {
		if candidate.UserID == me.UserID {
			continue
		}
		s, ok := matchScore(me, candidate, mannerOf)
		if !ok || s <= 0 {
			continue
		}
		ranked = append(ranked, RankedCandidate{UserID: candidate.UserID, Score: s})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].UserID < ranked[j].UserID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
