package main

import "math"

// Reputation aggregation. The manner score is recomputed from scratch on every
// read; rating volume per user is small enough that caching would only add
// invalidation bugs.

// mannerFromValues converts received rating values to the public 0-100 manner
// score: arithmetic mean times the scale factor, one decimal place. No ratings
// means "no data yet", which reads as the neutral default rather than zero
// trust.
func mannerFromValues(values []int) float64 {
	if len(values) == 0 {
		return MannerDefault
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	mean := float64(sum) / float64(len(values))
	return roundTenth(mean * mannerFactor)
}

// mannerFromRatings aggregates the ratings received by userID out of a full
// rating listing.
func mannerFromRatings(ratings []Rating, userID string) float64 {
	var values []int
	for _, r := range ratings {
		if r.To == userID {
			values = append(values, r.Value)
		}
	}
	return mannerFromValues(values)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
