package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/pick36/contest"
	"github.com/padraicbc/pick36/models"
)

type submitPickRequest struct {
	RaceID int    `json:"raceID" validate:"required"`
	Driver string `json:"driver" validate:"required"`
}

type autoAssignRequest struct {
	Candidates []string `json:"candidates"`
}

// SubmitPick records or replaces the caller's pick for a race.
func (h *Handler) SubmitPick(c echo.Context) error {
	var req submitPickRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := contest.Submit(c.Request().Context(), h.db, userID(c), req.RaceID, req.Driver)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]string{"message": "pick saved"})
	case errors.Is(err, contest.ErrDriverUsed):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, contest.ErrRaceNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	case errors.Is(err, contest.ErrRaceCompleted):
		return echo.NewHTTPError(http.StatusConflict, "this race is already completed")
	default:
		zap.L().Error("submit pick failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not save pick")
	}
}

// MyPicks returns the caller's pick history ordered by race number.
func (h *Handler) MyPicks(c echo.Context) error {
	picks, err := contest.PicksByUser(c.Request().Context(), h.db, userID(c))
	if err != nil {
		zap.L().Error("list picks failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list picks")
	}
	return c.JSON(http.StatusOK, picks)
}

// UsedDrivers returns the caller's season-wide used-driver list.
func (h *Handler) UsedDrivers(c echo.Context) error {
	used, err := contest.UsedDrivers(c.Request().Context(), h.db, userID(c))
	if err != nil {
		zap.L().Error("used drivers failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list used drivers")
	}
	return c.JSON(http.StatusOK, used)
}

// Drivers returns the full roster split into available and used for the caller.
func (h *Handler) Drivers(c echo.Context) error {
	used, err := contest.UsedDrivers(c.Request().Context(), h.db, userID(c))
	if err != nil {
		zap.L().Error("drivers failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list drivers")
	}

	available := make([]string, 0, 36)
	for _, d := range contest.Roster() {
		if !slices.Contains(used, d) {
			available = append(available, d)
		}
	}
	slices.Sort(available)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"available": available,
		"used":      used,
	})
}

// RacePicks returns everyone's picks for a race. Picks stay hidden until
// race day unless the race is already completed.
func (h *Handler) RacePicks(c echo.Context) error {
	raceID, err := strconv.Atoi(c.QueryParam("raceID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing or bad raceID param")
	}

	ctx := c.Request().Context()
	race := new(models.Race)
	if err := h.db.NewSelect().Model(race).Where("id = ?", raceID).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "race not found")
		}
		zap.L().Error("race lookup failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load race")
	}

	if !race.Completed && !raceDayReached(race.RaceDate) {
		return echo.NewHTTPError(http.StatusForbidden, "picks become visible on race day")
	}

	picks, err := contest.AllPicksForRace(ctx, h.db, raceID)
	if err != nil {
		zap.L().Error("race picks failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list race picks")
	}
	return c.JSON(http.StatusOK, picks)
}

// AutoAssign gives a random available driver to every user without a pick
// for the race. Admin only, triggered on or after race day. Candidates
// default to the full roster.
func (h *Handler) AutoAssign(c echo.Context) error {
	raceID, err := strconv.Atoi(c.QueryParam("raceID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing or bad raceID param")
	}

	var req autoAssignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	candidates := req.Candidates
	if len(candidates) == 0 {
		candidates = contest.Roster()
	}

	assigned, errs, err := contest.AutoAssign(c.Request().Context(), h.db, raceID, candidates)
	if err != nil {
		zap.L().Error("auto-assign failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "auto-assignment failed")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"assigned": assigned,
		"errors":   errs,
	})
}
