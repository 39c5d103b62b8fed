package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/pick36/contest"
)

// EnterResults stores results supplied as JSON rows, scores matching picks
// and closes the race. Admin only. Re-posting replaces the previous rows.
func (h *Handler) EnterResults(c echo.Context) error {
	raceID, err := strconv.Atoi(c.QueryParam("raceID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing or bad raceID param")
	}

	var rows []contest.ResultRow
	if err := c.Bind(&rows); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(rows) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no result rows supplied")
	}
	for _, row := range rows {
		if err := c.Validate(&row); err != nil {
			return err
		}
	}

	return h.enterResults(c, raceID, rows)
}

// EnterResultsCSV stores results uploaded as a CSV body with driver_name
// and total_points columns. Finish positions come from the points ranking.
// Admin only.
func (h *Handler) EnterResultsCSV(c echo.Context) error {
	raceID, err := strconv.Atoi(c.QueryParam("raceID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing or bad raceID param")
	}

	body := c.Request().Body
	defer body.Close()

	rows, err := contest.ParseResultsCSV(body)
	if err != nil {
		var missing *contest.MissingColumnsError
		if errors.As(err, &missing) {
			return echo.NewHTTPError(http.StatusBadRequest, missing.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(rows) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no result rows supplied")
	}

	return h.enterResults(c, raceID, rows)
}

func (h *Handler) enterResults(c echo.Context, raceID int, rows []contest.ResultRow) error {
	err := contest.EnterResults(c.Request().Context(), h.db, raceID, rows)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "results entered",
			"drivers": len(rows),
		})
	case errors.Is(err, contest.ErrRaceNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	default:
		zap.L().Error("enter results failed", zap.Int("raceID", raceID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not enter results")
	}
}

// RaceResults returns stored results for a race ordered by finish position.
func (h *Handler) RaceResults(c echo.Context) error {
	raceID, err := strconv.Atoi(c.QueryParam("raceID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing or bad raceID param")
	}

	results, err := contest.ResultsForRace(c.Request().Context(), h.db, raceID)
	if err != nil {
		zap.L().Error("race results failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list results")
	}
	return c.JSON(http.StatusOK, results)
}
