package main

import "sort"

// Consent resolution. Matches are never stored; they are derived from the
// decision log every time someone asks. The input is the full current decision
// set (one row per ordered pair, latest write wins), so the view is always as
// fresh as the last read of the store.

// resolveConsent computes, for the subject user:
//   - Confirmed: users where a like exists in both directions.
//   - PendingAdmirers: users who liked the subject without reciprocation yet,
//     excluding anyone already confirmed.
//
// Both lists come back sorted by user id for stable output.
func resolveConsent(decisions []Decision, me string) ConsentView {
	likedByMe := make(map[string]struct{})
	likedMe := make(map[string]struct{})
	for _, d := range decisions {
		if d.Verdict != VerdictLike {
			continue
		}
		switch {
		case d.From == me:
			likedByMe[d.To] = struct{}{}
		case d.To == me:
			likedMe[d.From] = struct{}{}
		}
	}

	view := ConsentView{Confirmed: []string{}, PendingAdmirers: []string{}}
	for u := range likedByMe {
		if _, mutual := likedMe[u]; mutual {
			view.Confirmed = append(view.Confirmed, u)
		}
	}
	for u := range likedMe {
		if _, mine := likedByMe[u]; !mine {
			view.PendingAdmirers = append(view.PendingAdmirers, u)
		}
	}

	sort.Strings(view.Confirmed)
	sort.Strings(view.PendingAdmirers)
	return view
}

// isConfirmedMatch reports whether a and b currently like each other.
func isConfirmedMatch(decisions []Decision, a, b string) bool {
	aLikesB, bLikesA := false, false
	for _, d := range decisions {
		if d.Verdict != VerdictLike {
			continue
		}
		if d.From == a && d.To == b {
			aLikesB = true
		}
		if d.From == b && d.To == a {
			bLikesA = true
		}
	}
	return aLikesB && bLikesA
}
