package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/pick36/contest"
	"github.com/padraicbc/pick36/models"
	"github.com/padraicbc/pick36/testutil"
)

func TestEnterResultsHandler(t *testing.T) {
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice", false)
	race := testutil.CreateRace(t, db, 1, "2026-02-15", false)
	require.NoError(t, contest.Submit(context.Background(), db, alice.ID, race.ID, "Kyle Larson"))

	body := `[{"driverName":"Kyle Larson","finishPosition":1,"points":55},
	          {"driverName":"Chase Elliott","finishPosition":2,"points":35}]`
	c, rec, h := newTestContext(t, db, http.MethodPost,
		fmt.Sprintf("/api/results?raceID=%d", race.ID), body)
	require.NoError(t, h.EnterResults(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.Race
	require.NoError(t, db.NewSelect().Model(&got).Where("id = ?", race.ID).Scan(context.Background()))
	assert.True(t, got.Completed)

	// Leaderboard reflects alice's scored pick.
	c, rec, h = newTestContext(t, db, http.MethodGet, "/api/leaderboard", "")
	require.NoError(t, h.Leaderboard(c))

	var standings []contest.Standing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &standings))
	require.Len(t, standings, 1)
	assert.Equal(t, "alice", standings[0].Username)
	assert.Equal(t, 55, standings[0].TotalPoints)
}

func TestEnterResultsHandlerUnknownRace(t *testing.T) {
	db := testutil.OpenDB(t)

	body := `[{"driverName":"Kyle Larson","finishPosition":1,"points":55}]`
	c, _, h := newTestContext(t, db, http.MethodPost, "/api/results?raceID=999", body)
	he := httpError(t, h.EnterResults(c))
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestEnterResultsCSVHandler(t *testing.T) {
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice", false)
	race := testutil.CreateRace(t, db, 1, "2026-02-15", false)
	require.NoError(t, contest.Submit(context.Background(), db, alice.ID, race.ID, "Kyle Larson"))

	csvBody := "driver_name,total_points\nChase Elliott,35\nKyle Larson,55\n"
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/results/csv?raceID=%d", race.ID), strings.NewReader(csvBody))
	req.Header.Set(echo.HeaderContentType, "text/csv")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	h := New(db, testJWTKey)

	require.NoError(t, h.EnterResultsCSV(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	results, err := contest.ResultsForRace(context.Background(), db, race.ID)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Kyle Larson", results[0].DriverName)
	assert.Equal(t, 1, results[0].FinishPosition)
	assert.Equal(t, 55, results[0].Points)
}

func TestEnterResultsCSVHandlerMissingColumns(t *testing.T) {
	db := testutil.OpenDB(t)
	race := testutil.CreateRace(t, db, 1, "2026-02-15", false)

	csvBody := "driver,points\nKyle Larson,55\n"
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/results/csv?raceID=%d", race.ID), strings.NewReader(csvBody))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	h := New(db, testJWTKey)

	he := httpError(t, h.EnterResultsCSV(c))
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Contains(t, fmt.Sprint(he.Message), "driver_name")

	// Nothing was written and the race stayed open.
	var got models.Race
	require.NoError(t, db.NewSelect().Model(&got).Where("id = ?", race.ID).Scan(context.Background()))
	assert.False(t, got.Completed)
}
