package main

import (
	"database/sql"
	"log"

	_ "github.com/lib/pq" // PostgreSQL driver
)

func initDB(dsn string) *sql.DB {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("Error connecting to the database:", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatal("Cannot reach the database:", err)
	}
	log.Default().Println("Database connection established successfully")

	if err := ensureSchema(db); err != nil {
		log.Fatal("Error ensuring database schema:", err)
	}
	return db
}

// ensureSchema creates the three store tables if they are missing. Tag sets
// are stored as a single semicolon-joined column; splitTags/joinTags are the
// only codec for that form. Both edge tables key on the ordered pair, which
// is what gives decisions and ratings their overwrite-per-pair semantics.
func ensureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id TEXT PRIMARY KEY,
			purpose TEXT NOT NULL,
			match_mode TEXT NOT NULL,
			group_size INT NOT NULL DEFAULT 2,
			team_code TEXT NOT NULL DEFAULT '',
			group_scope TEXT NOT NULL,
			group_name TEXT NOT NULL DEFAULT '',
			age INT NOT NULL,
			gender TEXT NOT NULL,
			height INT NOT NULL,
			body_type TEXT NOT NULL,
			personality_tags TEXT NOT NULL DEFAULT '',
			appearance_tag TEXT NOT NULL,
			mbti TEXT NOT NULL DEFAULT '',
			contact_info TEXT NOT NULL DEFAULT '',
			pref_min_age INT NOT NULL,
			pref_max_age INT NOT NULL,
			pref_gender TEXT NOT NULL,
			pref_min_height INT NOT NULL,
			pref_max_height INT NOT NULL,
			pref_personality_tags TEXT NOT NULL DEFAULT '',
			pref_appearance_tags TEXT NOT NULL DEFAULT '',
			pref_body_type_tags TEXT NOT NULL DEFAULT '',
			blacklist_personality_tags TEXT NOT NULL DEFAULT '',
			blacklist_appearance_tags TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS decisions (
			from_user TEXT NOT NULL,
			to_user TEXT NOT NULL,
			verdict TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (from_user, to_user)
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			from_user TEXT NOT NULL,
			to_user TEXT NOT NULL,
			value INT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (from_user, to_user)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_to_user ON decisions (to_user)`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_to_user ON ratings (to_user)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
