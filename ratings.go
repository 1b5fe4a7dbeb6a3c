package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
)

// POST /ratings - record a star rating after a confirmed match. The rating
// overwrites any previous one for the same ordered pair, and the receiver's
// manner score reflects it on the next read.
func ratingsHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		var rating Rating
		if err := json.NewDecoder(r.Body).Decode(&rating); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := rating.validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		for _, id := range []string{rating.From, rating.To} {
			ok, err := profileExists(db, id)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "db_error")
				log.Println("ratingsHandler exists error:", err)
				return
			}
			if !ok {
				writeError(w, http.StatusNotFound, "not_found")
				return
			}
		}

		if err := putRating(r.Context(), db, rating); err != nil {
			if err == errNotMatched {
				// Only confirmed matches may rate each other.
				writeError(w, http.StatusConflict, errNotMatched.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "db_error")
			log.Println("ratingsHandler upsert error:", err)
			return
		}

		manner, err := mannerScoreOf(db, rating.To)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_error")
			log.Println("ratingsHandler manner error:", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"to":           rating.To,
			"manner_score": manner,
		})
	}
}
