package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
)

// profileSummary is the public view of a profile: everything except contact
// info, which stays hidden until a confirmed match reveals it.
type profileSummary struct {
	UserID          string   `json:"user_id"`
	Purpose         string   `json:"purpose"`
	MatchMode       string   `json:"match_mode"`
	GroupSize       int      `json:"group_size"`
	GroupScope      string   `json:"group_scope"`
	GroupName       string   `json:"group_name,omitempty"`
	Age             int      `json:"age"`
	Gender          string   `json:"gender"`
	Height          int      `json:"height"`
	BodyType        string   `json:"body_type"`
	PersonalityTags []string `json:"personality_tags"`
	AppearanceTag   string   `json:"appearance_tag"`
	MBTI            string   `json:"mbti,omitempty"`
	MannerScore     float64  `json:"manner_score"`
}

func summarize(p Profile, manner float64) profileSummary {
	return profileSummary{
		UserID:          p.UserID,
		Purpose:         p.Purpose,
		MatchMode:       p.MatchMode,
		GroupSize:       p.GroupSize,
		GroupScope:      p.GroupScope,
		GroupName:       p.GroupName,
		Age:             p.Age,
		Gender:          p.Gender,
		Height:          p.Height,
		BodyType:        p.BodyType,
		PersonalityTags: p.PersonalityTags,
		AppearanceTag:   p.AppearanceTag,
		MBTI:            p.MBTI,
		MannerScore:     manner,
	}
}

// matchView is one confirmed match: partner summary plus the contact info
// that only matched users get to see.
type matchView struct {
	profileSummary
	ContactInfo string `json:"contact_info,omitempty"`
}

func profileExists(db *sql.DB, userID string) (bool, error) {
	var exists bool
	err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM profiles WHERE user_id = $1)`, userID).Scan(&exists)
	return exists, err
}

// POST /profiles - full-row upsert, owner supplies the whole record each time.
func profilesHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		var p Profile
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		p.normalize()
		if err := p.validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := putProfile(db, p); err != nil {
			writeError(w, http.StatusInternalServerError, "db_error")
			log.Println("profilesHandler upsert error:", err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"user_id": p.UserID})
	}
}

// A dispatcher router function for all /profiles/{id}[/...] requests
func profilesDispatcher(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		path := strings.Trim(r.URL.Path, "/")
		parts := strings.Split(path, "/")
		if len(parts) < 2 || parts[0] != "profiles" {
			http.NotFound(w, r)
			return
		}
		userID := parts[1]

		if len(parts) == 2 {
			getProfileHandler(db, userID).ServeHTTP(w, r)
			return
		}
		if len(parts) == 3 {
			switch parts[2] {
			case "recommendations":
				recommendationsHandler(db, userID).ServeHTTP(w, r)
			case "matches":
				matchesHandler(db, userID).ServeHTTP(w, r)
			case "admirers":
				admirersHandler(db, userID).ServeHTTP(w, r)
			case "manner":
				mannerHandler(db, userID).ServeHTTP(w, r)
			default:
				http.NotFound(w, r)
			}
			return
		}
		http.NotFound(w, r)
	}
}

// GET /profiles/{id}
func getProfileHandler(db *sql.DB, userID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := getProfile(db, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_error")
			log.Println("getProfileHandler error:", err)
			return
		}
		if p == nil {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		manner, err := mannerScoreOf(db, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_error")
			log.Println("getProfileHandler manner error:", err)
			return
		}
		writeJSON(w, http.StatusOK, summarize(*p, manner))
	}
}

// GET /profiles/{id}/recommendations?limit=N - ranked candidates for the
// subject. An empty list just means nobody fits the current preferences.
func recommendationsHandler(db *sql.DB, userID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultRankLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				writeError(w, http.StatusBadRequest, "invalid_limit")
				return
			}
			limit = n
		}

		me, err := getProfile(db, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_error")
			log.Println("recommendationsHandler profile error:", err)
			return
		}
		if me == nil {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}

		pool, err := listProfilesExcluding(db, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_error")
			log.Println("recommendationsHandler pool error:", err)
			return
		}
		scores, err := loadMannerScores(db)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_error")
			log.Println("recommendationsHandler manner error:", err)
			return
		}

		ranked := rankCandidates(*me, pool, limit, mannerLookupFrom(scores))
		writeJSON(w, http.StatusOK, map[string][]RankedCandidate{"recommendations": ranked})
	}
}

// GET /profiles/{id}/matches - confirmed matches with contact info revealed.
func matchesHandler(db *sql.DB, userID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := profileExists(db, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_error")
			log.Println("matchesHandler exists error:", err)
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}

		decisions, err := listDecisions(db)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_error")
			log.Println("matchesHandler decisions error:", err)
			return
		}
		view := resolveConsent(decisions, userID)

		matches := make([]matchView, 0, len(view.Confirmed))
		for _, pid := range view.Confirmed {
			partner, err := getProfile(db, pid)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "db_error")
				log.Println("matchesHandler partner error:", err)
				return
			}
			if partner == nil {
				// Decision edges can outlive a deleted profile; skip those.
				continue
			}
			manner, err := mannerScoreOf(db, pid)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "db_error")
				log.Println("matchesHandler manner error:", err)
				return
			}
			matches = append(matches, matchView{
				profileSummary: summarize(*partner, manner),
				ContactInfo:    partner.ContactInfo,
			})
		}
		writeJSON(w, http.StatusOK, map[string][]matchView{"matches": matches})
	}
}

// GET /profiles/{id}/admirers - users who liked the subject first, without
// reciprocation yet. Contact info stays hidden here.
func admirersHandler(db *sql.DB, userID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := profileExists(db, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_error")
			log.Println("admirersHandler exists error:", err)
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}

		decisions, err := listDecisions(db)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_error")
			log.Println("admirersHandler decisions error:", err)
			return
		}
		view := resolveConsent(decisions, userID)

		admirers := make([]profileSummary, 0, len(view.PendingAdmirers))
		for _, pid := range view.PendingAdmirers {
			admirer, err := getProfile(db, pid)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "db_error")
				log.Println("admirersHandler admirer error:", err)
				return
			}
			if admirer == nil {
				continue
			}
			manner, err := mannerScoreOf(db, pid)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "db_error")
				log.Println("admirersHandler manner error:", err)
				return
			}
			admirers = append(admirers, summarize(*admirer, manner))
		}
		writeJSON(w, http.StatusOK, map[string][]profileSummary{"admirers": admirers})
	}
}

// GET /profiles/{id}/manner
func mannerHandler(db *sql.DB, userID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := profileExists(db, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_error")
			log.Println("mannerHandler exists error:", err)
			return
		}
		if !ok {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		manner, err := mannerScoreOf(db, userID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_error")
			log.Println("mannerHandler error:", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"user_id":      userID,
			"manner_score": manner,
		})
	}
}
