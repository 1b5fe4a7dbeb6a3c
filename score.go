package main

// Compatibility scoring. matchScore is pure over its two profiles; the only
// outside input is the injected mannerOf lookup, which reads the rating store.
//
// Scoring is intentionally asymmetric: my view of a pair weighs my own
// preferences heavier than the candidate's, so matchScore(a, b) and
// matchScore(b, a) usually differ.

// mannerLookup resolves a user id to their current manner score (0-100).
// Unknown users get the neutral default, never an error.
type mannerLookup func(userID string) float64

// matchScore scores other as a candidate for me. The second return value is
// false when the pair is not viable at all; a rejected pair never carries a
// numeric score.
func matchScore(me, other Profile, mannerOf mannerLookup) (float64, bool) {
	// Hard filters, in order. Each one alone kills the pair.
	if me.Purpose != other.Purpose {
		return 0, false
	}
	if me.MatchMode != other.MatchMode {
		return 0, false
	}
	if me.MatchMode != ModeOneToOne && me.GroupSize != other.GroupSize {
		return 0, false
	}
	// Teammates share a team code; don't match a team against itself.
	if me.MatchMode == ModeTeam && me.TeamCode != "" && me.TeamCode == other.TeamCode {
		return 0, false
	}
	if me.GroupScope == ScopeRestricted && me.GroupName != "" && other.GroupName != me.GroupName {
		return 0, false
	}
	if other.GroupScope == ScopeRestricted && other.GroupName != "" && me.GroupName != other.GroupName {
		return 0, false
	}
	for _, t := range other.PersonalityTags {
		if containsTag(me.BlacklistPersonalityTags, t) {
			return 0, false
		}
	}
	if containsTag(me.BlacklistAppearanceTags, other.AppearanceTag) {
		return 0, false
	}
	if other.Age < me.PrefMinAge || other.Age > me.PrefMaxAge {
		return 0, false
	}
	if me.PrefGender != GenderAny && me.PrefGender != other.Gender {
		return 0, false
	}

	// Past the filters everything is additive; no term can reject.
	score := 0.0

	// ----- my preferences vs their attributes -----
	score += 10 // age already known to be in range

	if me.PrefGender != GenderAny {
		score += 5
	} else {
		score += 3
	}

	if other.Height >= me.PrefMinHeight && other.Height <= me.PrefMaxHeight {
		score += 4
	}

	if isOpenPreference(me.PrefBodyTypeTags) {
		score += 1
	} else if containsTag(me.PrefBodyTypeTags, other.BodyType) {
		score += 4
	} else {
		score -= 1
	}

	score += 3 * float64(overlapCount(me.PrefPersonalityTags, other.PersonalityTags))

	if isOpenPreference(me.PrefAppearanceTags) {
		score += 1
	} else if containsTag(me.PrefAppearanceTags, other.AppearanceTag) {
		score += 3
	}

	// ----- their preferences vs my attributes, at reduced weight -----
	if me.Age >= other.PrefMinAge && me.Age <= other.PrefMaxAge {
		score += 8
	} else {
		score -= 5
	}

	if other.PrefGender != GenderAny {
		if other.PrefGender == me.Gender {
			score += 5
		} else {
			score -= 5
		}
	} else {
		score += 2
	}

	score += 2 * float64(overlapCount(other.PrefPersonalityTags, me.PersonalityTags))

	if isOpenPreference(other.PrefAppearanceTags) {
		score += 1
	} else if containsTag(other.PrefAppearanceTags, me.AppearanceTag) {
		score += 2
	}

	if isOpenPreference(other.PrefBodyTypeTags) {
		score += 1
	} else if containsTag(other.PrefBodyTypeTags, me.BodyType) {
		score += 2
	}

	// Reputation bonus: two perfect manner scores add 4 points.
	score += (mannerOf(me.UserID) + mannerOf(other.UserID)) / 50.0

	return score, true
}
