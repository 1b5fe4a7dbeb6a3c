package main

import (
	"fmt"
	"strings"
	"time"
)

// Enumerated option tables. Validation at the write boundary and the scorer
// both read these, so the two can never drift apart.

const (
	PurposeFriend  = "friend"
	PurposeRomance = "romance"
	PurposeStudy   = "study"
	PurposeHobby   = "hobby"
	PurposeOther   = "other"

	ModeOneToOne = "one_to_one"
	ModeGroup    = "group"
	ModeTeam     = "team"

	ScopeOpen       = "open"
	ScopeRestricted = "restricted"

	GenderFemale = "female"
	GenderMale   = "male"
	GenderOther  = "other"

	// GenderAny is only valid as a preference, never as a self-attribute.
	GenderAny = "any"

	// TagAny inside a preference tag set means "no preference".
	TagAny = "any"

	VerdictLike = "like"
	VerdictPass = "pass"
)

var (
	purposeOptions    = []string{PurposeFriend, PurposeRomance, PurposeStudy, PurposeHobby, PurposeOther}
	matchModeOptions  = []string{ModeOneToOne, ModeGroup, ModeTeam}
	groupScopeOptions = []string{ScopeOpen, ScopeRestricted}
	genderOptions     = []string{GenderFemale, GenderMale, GenderOther}
	prefGenderOptions = []string{GenderAny, GenderFemale, GenderMale}
	verdictOptions    = []string{VerdictLike, VerdictPass}

	personalityOptions = []string{
		"introvert", "extrovert", "calm", "energetic", "humorous",
		"logical", "emotional", "leader", "supporter", "spontaneous", "organized",
	}
	appearanceOptions = []string{"dog", "cat", "fox", "rabbit", "bear", "deer", "dino", "other"}
	bodyTypeOptions   = []string{"slim", "average", "heavy"}
)

// Rating scale: 1-10 stars per rating. The manner score is the mean of the
// ratings a user received times 10, so full marks sit at 100.0 and an unrated
// user at the neutral 50.0.
const (
	RatingMin     = 1
	RatingMax     = 10
	mannerFactor  = 10.0
	MannerDefault = 50.0
)

// Bounds mirrored from the profile form widgets.
const (
	ageMin    = 10
	ageMax    = 100
	heightMin = 130
	heightMax = 220

	minGroupSize = 2
	maxGroupSize = 5

	maxIDLen       = 30
	maxGroupLen    = 50
	maxTeamCodeLen = 20
	maxContactLen  = 100
	maxMBTILen     = 4
)

// Profile is the full self-reported record for one user. It is upserted
// wholesale, never merged field by field.
type Profile struct {
	UserID    string `json:"user_id"`
	Purpose   string `json:"purpose"`
	MatchMode string `json:"match_mode"`
	GroupSize int    `json:"group_size"`
	TeamCode  string `json:"team_code,omitempty"`

	GroupScope string `json:"group_scope"`
	GroupName  string `json:"group_name,omitempty"`

	Age             int      `json:"age"`
	Gender          string   `json:"gender"`
	Height          int      `json:"height"`
	BodyType        string   `json:"body_type"`
	PersonalityTags []string `json:"personality_tags"`
	AppearanceTag   string   `json:"appearance_tag"`
	MBTI            string   `json:"mbti,omitempty"`
	ContactInfo     string   `json:"contact_info,omitempty"`

	PrefMinAge          int      `json:"pref_min_age"`
	PrefMaxAge          int      `json:"pref_max_age"`
	PrefGender          string   `json:"pref_gender"`
	PrefMinHeight       int      `json:"pref_min_height"`
	PrefMaxHeight       int      `json:"pref_max_height"`
	PrefPersonalityTags []string `json:"pref_personality_tags"`
	PrefAppearanceTags  []string `json:"pref_appearance_tags"`
	PrefBodyTypeTags    []string `json:"pref_body_type_tags"`

	BlacklistPersonalityTags []string `json:"blacklist_personality_tags"`
	BlacklistAppearanceTags  []string `json:"blacklist_appearance_tags"`

	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Decision is a directed like/pass edge. At most one current verdict per
// ordered pair; a new decision overwrites the old one.
type Decision struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Verdict   string    `json:"verdict"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Rating is a directed star rating, only meaningful between matched users.
type Rating struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Value     int       `json:"value"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// RankedCandidate is one row of a recommendation listing.
type RankedCandidate struct {
	UserID string  `json:"user_id"`
	Score  float64 `json:"score"`
}

// ConsentView is the derived consent state for one subject user.
type ConsentView struct {
	Confirmed       []string `json:"confirmed"`
	PendingAdmirers []string `json:"pending_admirers"`
}

// validationError carries the short code written into the JSON error response.
type validationError string

func (e validationError) Error() string { return string(e) }

func isValidation(err error) bool {
	_, ok := err.(validationError)
	return ok
}

func validOption(v string, options []string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}

func validOptions(vs, options []string) bool {
	for _, v := range vs {
		if !validOption(v, options) {
			return false
		}
	}
	return true
}

// normalize trims free-text fields and deduplicates every tag set so the
// scorer only ever sees canonical profiles.
func (p *Profile) normalize() {
	p.UserID = strings.TrimSpace(p.UserID)
	p.TeamCode = strings.TrimSpace(p.TeamCode)
	p.GroupName = strings.TrimSpace(p.GroupName)
	p.MBTI = strings.ToUpper(strings.TrimSpace(p.MBTI))
	p.ContactInfo = strings.TrimSpace(p.ContactInfo)

	p.PersonalityTags = dedupeTags(p.PersonalityTags)
	p.PrefPersonalityTags = dedupeTags(p.PrefPersonalityTags)
	p.PrefAppearanceTags = dedupeTags(p.PrefAppearanceTags)
	p.PrefBodyTypeTags = dedupeTags(p.PrefBodyTypeTags)
	p.BlacklistPersonalityTags = dedupeTags(p.BlacklistPersonalityTags)
	p.BlacklistAppearanceTags = dedupeTags(p.BlacklistAppearanceTags)

	if p.MatchMode == ModeOneToOne {
		// One-to-one is always me plus one other person.
		p.GroupSize = 2
	}
	if p.MatchMode != ModeTeam {
		p.TeamCode = ""
	}
	if p.GroupScope != ScopeRestricted {
		p.GroupName = ""
	}
}

// validate rejects malformed profiles at the write boundary. The engine
// functions assume every stored profile already passed this.
func (p *Profile) validate() error {
	if p.UserID == "" {
		return validationError("missing_user_id")
	}
	if len(p.UserID) > maxIDLen {
		return validationError("user_id_too_long")
	}
	if !validOption(p.Purpose, purposeOptions) {
		return validationError("invalid_purpose")
	}
	if !validOption(p.MatchMode, matchModeOptions) {
		return validationError("invalid_match_mode")
	}
	if p.MatchMode != ModeOneToOne && (p.GroupSize < minGroupSize || p.GroupSize > maxGroupSize) {
		return validationError("invalid_group_size")
	}
	if len(p.TeamCode) > maxTeamCodeLen {
		return validationError("team_code_too_long")
	}
	if !validOption(p.GroupScope, groupScopeOptions) {
		return validationError("invalid_group_scope")
	}
	if p.GroupScope == ScopeRestricted && p.GroupName == "" {
		return validationError("missing_group_name")
	}
	if len(p.GroupName) > maxGroupLen {
		return validationError("group_name_too_long")
	}
	if p.Age < ageMin || p.Age > ageMax {
		return validationError("invalid_age")
	}
	if !validOption(p.Gender, genderOptions) {
		return validationError("invalid_gender")
	}
	if p.Height < heightMin || p.Height > heightMax {
		return validationError("invalid_height")
	}
	if !validOption(p.BodyType, bodyTypeOptions) {
		return validationError("invalid_body_type")
	}
	if !validOptions(p.PersonalityTags, personalityOptions) {
		return validationError("invalid_personality_tags")
	}
	if !validOption(p.AppearanceTag, appearanceOptions) {
		return validationError("invalid_appearance_tag")
	}
	if len(p.MBTI) > maxMBTILen {
		return validationError("invalid_mbti")
	}
	if len(p.ContactInfo) > maxContactLen {
		return validationError("contact_info_too_long")
	}
	if p.PrefMinAge > p.PrefMaxAge || p.PrefMinAge < ageMin || p.PrefMaxAge > ageMax {
		return validationError("invalid_age_range")
	}
	if p.PrefMinHeight > p.PrefMaxHeight || p.PrefMinHeight < heightMin || p.PrefMaxHeight > heightMax {
		return validationError("invalid_height_range")
	}
	if !validOption(p.PrefGender, prefGenderOptions) {
		return validationError("invalid_pref_gender")
	}
	if !validOptions(p.PrefPersonalityTags, personalityOptions) {
		return validationError("invalid_pref_personality_tags")
	}
	if !validOptions(p.PrefAppearanceTags, append([]string{TagAny}, appearanceOptions...)) {
		return validationError("invalid_pref_appearance_tags")
	}
	if !validOptions(p.PrefBodyTypeTags, append([]string{TagAny}, bodyTypeOptions...)) {
		return validationError("invalid_pref_body_type_tags")
	}
	if !validOptions(p.BlacklistPersonalityTags, personalityOptions) {
		return validationError("invalid_blacklist_personality_tags")
	}
	if !validOptions(p.BlacklistAppearanceTags, appearanceOptions) {
		return validationError("invalid_blacklist_appearance_tags")
	}
	return nil
}

func validatePair(from, to string) error {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return validationError("missing_user_id")
	}
	if from == to {
		return validationError("self_edge")
	}
	return nil
}

func (d *Decision) validate() error {
	if err := validatePair(d.From, d.To); err != nil {
		return err
	}
	if !validOption(d.Verdict, verdictOptions) {
		return validationError("invalid_verdict")
	}
	return nil
}

func (r *Rating) validate() error {
	if err := validatePair(r.From, r.To); err != nil {
		return err
	}
	if r.Value < RatingMin || r.Value > RatingMax {
		return validationError(fmt.Sprintf("rating_out_of_range_%d_%d", RatingMin, RatingMax))
	}
	return nil
}
