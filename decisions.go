package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
)

// Decision endpoints. A decision is a directed like/pass edge; re-deciding the
// same pair overwrites the previous verdict. Matches are never stored - the
// response reports "matched" when the new like happens to complete a mutual
// pair, derived on the spot.

// decisionsHandler serves POST /decisions and GET /decisions?from={id}.
func decisionsHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			postDecision(db, w, r)
		case http.MethodGet:
			getDecisions(db, w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
		}
	}
}

func postDecision(db *sql.DB, w http.ResponseWriter, r *http.Request) {
	var d Decision
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := d.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	for _, id := range []string{d.From, d.To} {
		ok, err := profileExists(db, id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_error")
			log.Println("postDecision exists error:", err)
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
	}

	if err := putDecision(db, d); err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		log.Println("postDecision upsert error:", err)
		return
	}

	state := d.Verdict
	if d.Verdict == VerdictLike {
		decisions, err := listDecisions(db)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_error")
			log.Println("postDecision consent error:", err)
			return
		}
		if isConfirmedMatch(decisions, d.From, d.To) {
			state = "matched"
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"state": state})
}

func getDecisions(db *sql.DB, w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	if from == "" {
		writeError(w, http.StatusBadRequest, "missing_from")
		return
	}
	decisions, err := listDecisionsBy(db, from)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		log.Println("getDecisions error:", err)
		return
	}
	if decisions == nil {
		decisions = []Decision{}
	}
	writeJSON(w, http.StatusOK, map[string][]Decision{"decisions": decisions})
}
