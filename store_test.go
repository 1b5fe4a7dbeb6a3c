package main

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var profileColumnNames = []string{
	"user_id", "purpose", "match_mode", "group_size", "team_code",
	"group_scope", "group_name", "age", "gender", "height", "body_type",
	"personality_tags", "appearance_tag", "mbti", "contact_info",
	"pref_min_age", "pref_max_age", "pref_gender", "pref_min_height", "pref_max_height",
	"pref_personality_tags", "pref_appearance_tags", "pref_body_type_tags",
	"blacklist_personality_tags", "blacklist_appearance_tags", "updated_at",
}

func profileRows(ps ...Profile) *sqlmock.Rows {
	rows := sqlmock.NewRows(profileColumnNames)
	for _, p := range ps {
		rows.AddRow(
			p.UserID, p.Purpose, p.MatchMode, p.GroupSize, p.TeamCode,
			p.GroupScope, p.GroupName, p.Age, p.Gender, p.Height, p.BodyType,
			joinTags(p.PersonalityTags), p.AppearanceTag, p.MBTI, p.ContactInfo,
			p.PrefMinAge, p.PrefMaxAge, p.PrefGender, p.PrefMinHeight, p.PrefMaxHeight,
			joinTags(p.PrefPersonalityTags), joinTags(p.PrefAppearanceTags), joinTags(p.PrefBodyTypeTags),
			joinTags(p.BlacklistPersonalityTags), joinTags(p.BlacklistAppearanceTags), time.Now(),
		)
	}
	return rows
}

func TestPutProfileUpsert(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO profiles").
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := compatibleProfile("nova")
	require.NoError(t, putProfile(db, p))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProfileMissing(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	p, err := getProfile(db, "ghost")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProfileParsesTagColumns(t *testing.T) {
	db, mock := newMockDB(t)

	stored := compatibleProfile("nova")
	stored.PersonalityTags = []string{"calm", "logical"}
	stored.PrefAppearanceTags = []string{"cat", "fox"}
	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").
		WithArgs("nova").
		WillReturnRows(profileRows(stored))

	p, err := getProfile(db, "nova")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "nova", p.UserID)
	assert.Equal(t, []string{"calm", "logical"}, p.PersonalityTags)
	assert.Equal(t, []string{"cat", "fox"}, p.PrefAppearanceTags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProfilesExcluding(t *testing.T) {
	db, mock := newMockDB(t)

	a := compatibleProfile("ash")
	b := compatibleProfile("bee")
	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id <>").
		WithArgs("nova").
		WillReturnRows(profileRows(a, b))

	pool, err := listProfilesExcluding(db, "nova")
	require.NoError(t, err)
	require.Len(t, pool, 2)
	assert.Equal(t, "ash", pool[0].UserID)
	assert.Equal(t, "bee", pool[1].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPutDecisionUpsert(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO decisions").
		WithArgs("ash", "bee", VerdictLike).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := putDecision(db, Decision{From: "ash", To: "bee", Verdict: VerdictLike})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPutRatingRequiresMutualLike(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM decisions`).
		WithArgs("ash", "bee", VerdictLike).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := putRating(context.Background(), db, Rating{From: "ash", To: "bee", Value: 8})
	assert.ErrorIs(t, err, errNotMatched)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPutRatingStoresWhenMatched(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM decisions`).
		WithArgs("ash", "bee", VerdictLike).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec("INSERT INTO ratings").
		WithArgs("ash", "bee", 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := putRating(context.Background(), db, Rating{From: "ash", To: "bee", Value: 9})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMannerScoreOf(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"from_user", "to_user", "value", "updated_at"}).
		AddRow("ash", "bee", 7, time.Now()).
		AddRow("cid", "bee", 9, time.Now())
	mock.ExpectQuery("SELECT (.+) FROM ratings WHERE to_user").
		WithArgs("bee").
		WillReturnRows(rows)

	score, err := mannerScoreOf(db, "bee")
	require.NoError(t, err)
	assert.Equal(t, 80.0, score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMannerScoreOfUnrated(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM ratings WHERE to_user").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"from_user", "to_user", "value", "updated_at"}))

	score, err := mannerScoreOf(db, "ghost")
	require.NoError(t, err)
	assert.Equal(t, MannerDefault, score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadMannerScores(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"to_user", "avg"}).
		AddRow("ash", 7.0).
		AddRow("bee", 7.333333)
	mock.ExpectQuery(`SELECT to_user, AVG\(value\) FROM ratings`).
		WillReturnRows(rows)

	scores, err := loadMannerScores(db)
	require.NoError(t, err)
	assert.Equal(t, 70.0, scores["ash"])
	assert.Equal(t, 73.3, scores["bee"])

	lookup := mannerLookupFrom(scores)
	assert.Equal(t, 70.0, lookup("ash"))
	assert.Equal(t, MannerDefault, lookup("ghost"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
