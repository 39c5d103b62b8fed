package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/pick36/models"
	"github.com/padraicbc/pick36/testutil"
)

func TestRacesOrderedByNumber(t *testing.T) {
	db := testutil.OpenDB(t)
	testutil.CreateRace(t, db, 3, "2026-03-01", false)
	testutil.CreateRace(t, db, 1, "2026-02-15", true)
	testutil.CreateRace(t, db, 2, "2026-02-22", false)

	c, rec, h := newTestContext(t, db, http.MethodGet, "/api/races", "")
	require.NoError(t, h.Races(c))

	var races []models.Race
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &races))
	require.Len(t, races, 3)
	assert.Equal(t, 1, races[0].RaceNumber)
	assert.Equal(t, 2, races[1].RaceNumber)
	assert.Equal(t, 3, races[2].RaceNumber)
}

func TestNextRaceSkipsCompleted(t *testing.T) {
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice", false)
	testutil.CreateRace(t, db, 1, "2026-02-15", true)
	testutil.CreateRace(t, db, 2, "2026-02-22", false)

	c, rec, h := newTestContext(t, db, http.MethodGet, "/api/races/next", "")
	c.Set("userID", alice.ID)
	require.NoError(t, h.NextRace(c))

	var resp struct {
		Race models.Race  `json:"race"`
		Pick *models.Pick `json:"pick"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Race.RaceNumber)
	assert.Nil(t, resp.Pick)
}

func TestNextRaceNoneOpen(t *testing.T) {
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice", false)
	testutil.CreateRace(t, db, 1, "2026-02-15", true)

	c, _, h := newTestContext(t, db, http.MethodGet, "/api/races/next", "")
	c.Set("userID", alice.ID)
	he := httpError(t, h.NextRace(c))
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestCreateRaceHandler(t *testing.T) {
	db := testutil.OpenDB(t)

	body := `{"raceNumber":5,"raceName":"Las Vegas","raceDate":"2026-03-15","track":"Las Vegas Motor Speedway"}`
	c, rec, h := newTestContext(t, db, http.MethodPost, "/api/races", body)
	require.NoError(t, h.CreateRace(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate race number.
	c, _, h = newTestContext(t, db, http.MethodPost, "/api/races", body)
	he := httpError(t, h.CreateRace(c))
	assert.Equal(t, http.StatusConflict, he.Code)

	// Bad date format.
	bad := `{"raceNumber":6,"raceName":"X","raceDate":"03/15/2026","track":"Y"}`
	c, _, h = newTestContext(t, db, http.MethodPost, "/api/races", bad)
	he = httpError(t, h.CreateRace(c))
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
