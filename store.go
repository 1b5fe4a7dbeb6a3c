package main

import (
	"context"
	"database/sql"
)

// Store layer: last write wins per key, enforced by upserts on the primary
// key. Every read hands the engine a full snapshot; nothing here caches.

const profileColumns = `user_id, purpose, match_mode, group_size, team_code,
	group_scope, group_name, age, gender, height, body_type,
	personality_tags, appearance_tag, mbti, contact_info,
	pref_min_age, pref_max_age, pref_gender, pref_min_height, pref_max_height,
	pref_personality_tags, pref_appearance_tags, pref_body_type_tags,
	blacklist_personality_tags, blacklist_appearance_tags, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (Profile, error) {
	var p Profile
	var personality, prefPersonality, prefAppearance, prefBody, blackPersonality, blackAppearance string
	err := row.Scan(
		&p.UserID, &p.Purpose, &p.MatchMode, &p.GroupSize, &p.TeamCode,
		&p.GroupScope, &p.GroupName, &p.Age, &p.Gender, &p.Height, &p.BodyType,
		&personality, &p.AppearanceTag, &p.MBTI, &p.ContactInfo,
		&p.PrefMinAge, &p.PrefMaxAge, &p.PrefGender, &p.PrefMinHeight, &p.PrefMaxHeight,
		&prefPersonality, &prefAppearance, &prefBody,
		&blackPersonality, &blackAppearance, &p.UpdatedAt,
	)
	if err != nil {
		return Profile{}, err
	}
	p.PersonalityTags = splitTags(personality)
	p.PrefPersonalityTags = splitTags(prefPersonality)
	p.PrefAppearanceTags = splitTags(prefAppearance)
	p.PrefBodyTypeTags = splitTags(prefBody)
	p.BlacklistPersonalityTags = splitTags(blackPersonality)
	p.BlacklistAppearanceTags = splitTags(blackAppearance)
	return p, nil
}

// putProfile replaces the whole row for the profile's user id.
func putProfile(db *sql.DB, p Profile) error {
	_, err := db.Exec(`
		INSERT INTO profiles (
			user_id, purpose, match_mode, group_size, team_code,
			group_scope, group_name, age, gender, height, body_type,
			personality_tags, appearance_tag, mbti, contact_info,
			pref_min_age, pref_max_age, pref_gender, pref_min_height, pref_max_height,
			pref_personality_tags, pref_appearance_tags, pref_body_type_tags,
			blacklist_personality_tags, blacklist_appearance_tags, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, now()
		)
		ON CONFLICT (user_id) DO UPDATE SET
			purpose = EXCLUDED.purpose,
			match_mode = EXCLUDED.match_mode,
			group_size = EXCLUDED.group_size,
			team_code = EXCLUDED.team_code,
			group_scope = EXCLUDED.group_scope,
			group_name = EXCLUDED.group_name,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			height = EXCLUDED.height,
			body_type = EXCLUDED.body_type,
			personality_tags = EXCLUDED.personality_tags,
			appearance_tag = EXCLUDED.appearance_tag,
			mbti = EXCLUDED.mbti,
			contact_info = EXCLUDED.contact_info,
			pref_min_age = EXCLUDED.pref_min_age,
			pref_max_age = EXCLUDED.pref_max_age,
			pref_gender = EXCLUDED.pref_gender,
			pref_min_height = EXCLUDED.pref_min_height,
			pref_max_height = EXCLUDED.pref_max_height,
			pref_personality_tags = EXCLUDED.pref_personality_tags,
			pref_appearance_tags = EXCLUDED.pref_appearance_tags,
			pref_body_type_tags = EXCLUDED.pref_body_type_tags,
			blacklist_personality_tags = EXCLUDED.blacklist_personality_tags,
			blacklist_appearance_tags = EXCLUDED.blacklist_appearance_tags,
			updated_at = now()
	`,
		p.UserID, p.Purpose, p.MatchMode, p.GroupSize, p.TeamCode,
		p.GroupScope, p.GroupName, p.Age, p.Gender, p.Height, p.BodyType,
		joinTags(p.PersonalityTags), p.AppearanceTag, p.MBTI, p.ContactInfo,
		p.PrefMinAge, p.PrefMaxAge, p.PrefGender, p.PrefMinHeight, p.PrefMaxHeight,
		joinTags(p.PrefPersonalityTags), joinTags(p.PrefAppearanceTags), joinTags(p.PrefBodyTypeTags),
		joinTags(p.BlacklistPersonalityTags), joinTags(p.BlacklistAppearanceTags),
	)
	return err
}

// getProfile returns (nil, nil) when no profile exists for the id.
func getProfile(db *sql.DB, userID string) (*Profile, error) {
	row := db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// listProfilesExcluding returns the whole candidate pool minus the subject.
func listProfilesExcluding(db *sql.DB, userID string) ([]Profile, error) {
	rows, err := db.Query(`SELECT `+profileColumns+` FROM profiles WHERE user_id <> $1 ORDER BY user_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pool []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		pool = append(pool, p)
	}
	return pool, rows.Err()
}

func putDecision(db *sql.DB, d Decision) error {
	_, err := db.Exec(`
		INSERT INTO decisions (from_user, to_user, verdict, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (from_user, to_user) DO UPDATE
		SET verdict = EXCLUDED.verdict, updated_at = now()
	`, d.From, d.To, d.Verdict)
	return err
}

func scanDecisions(rows *sql.Rows) ([]Decision, error) {
	defer rows.Close()
	var out []Decision
	for rows.Next() {
		var d Decision
		if err := rows.Scan(&d.From, &d.To, &d.Verdict, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// listDecisions returns the full current decision set, one row per ordered
// pair. The consent resolver consumes this wholesale.
func listDecisions(db *sql.DB) ([]Decision, error) {
	rows, err := db.Query(`SELECT from_user, to_user, verdict, updated_at FROM decisions`)
	if err != nil {
		return nil, err
	}
	return scanDecisions(rows)
}

// listDecisionsBy returns the current verdicts issued by one user, for UI
// prefill of the like/pass state.
func listDecisionsBy(db *sql.DB, from string) ([]Decision, error) {
	rows, err := db.Query(`
		SELECT from_user, to_user, verdict, updated_at
		FROM decisions WHERE from_user = $1 ORDER BY to_user
	`, from)
	if err != nil {
		return nil, err
	}
	return scanDecisions(rows)
}

var errNotMatched = validationError("not_matched")

// putRating stores a rating inside one transaction: the confirmed-match
// precondition and the write must see the same decision snapshot. Returns
// errNotMatched when the pair has no mutual like right now.
func putRating(ctx context.Context, db *sql.DB, r Rating) error {
	return withTx(ctx, db, func(tx *sql.Tx) error {
		var likes int
		err := tx.QueryRow(`
			SELECT COUNT(*) FROM decisions
			WHERE verdict = $3
			  AND ((from_user = $1 AND to_user = $2) OR (from_user = $2 AND to_user = $1))
		`, r.From, r.To, VerdictLike).Scan(&likes)
		if err != nil {
			return err
		}
		if likes < 2 {
			return errNotMatched
		}
		_, err = tx.Exec(`
			INSERT INTO ratings (from_user, to_user, value, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (from_user, to_user) DO UPDATE
			SET value = EXCLUDED.value, updated_at = now()
		`, r.From, r.To, r.Value)
		return err
	})
}

// listRatingsFor returns the ratings received by one user.
func listRatingsFor(db *sql.DB, to string) ([]Rating, error) {
	rows, err := db.Query(`
		SELECT from_user, to_user, value, updated_at
		FROM ratings WHERE to_user = $1 ORDER BY from_user
	`, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Rating
	for rows.Next() {
		var r Rating
		if err := rows.Scan(&r.From, &r.To, &r.Value, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// mannerScoreOf recomputes one user's manner score from the rating store.
func mannerScoreOf(db *sql.DB, userID string) (float64, error) {
	ratings, err := listRatingsFor(db, userID)
	if err != nil {
		return 0, err
	}
	values := make([]int, 0, len(ratings))
	for _, r := range ratings {
		values = append(values, r.Value)
	}
	return mannerFromValues(values), nil
}

// loadMannerScores bulk-loads every user's received-rating average in one
// query so ranking a pool of N candidates doesn't issue N lookups. Users
// absent from the map fall back to the neutral default.
func loadMannerScores(db *sql.DB) (map[string]float64, error) {
	rows, err := db.Query(`SELECT to_user, AVG(value) FROM ratings GROUP BY to_user`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make(map[string]float64)
	for rows.Next() {
		var id string
		var avg float64
		if err := rows.Scan(&id, &avg); err != nil {
			return nil, err
		}
		scores[id] = roundTenth(avg * mannerFactor)
	}
	return scores, rows.Err()
}

// mannerLookupFrom wraps a preloaded score map as the lookup the scorer wants.
func mannerLookupFrom(scores map[string]float64) mannerLookup {
	return func(userID string) float64 {
		if v, ok := scores[userID]; ok {
			return v
		}
		return MannerDefault
	}
}
