package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/pick36/contest"
	"github.com/padraicbc/pick36/models"
)

type createRaceRequest struct {
	RaceNumber int    `json:"raceNumber" validate:"required,min=1,max=36"`
	RaceName   string `json:"raceName" validate:"required"`
	RaceDate   string `json:"raceDate" validate:"required,datetime=2006-01-02"`
	Track      string `json:"track" validate:"required"`
}

// Races returns all races ordered by race number.
func (h *Handler) Races(c echo.Context) error {
	var races []models.Race
	err := h.db.NewSelect().Model(&races).
		Order("race_number ASC").
		Scan(c.Request().Context())
	if err != nil {
		zap.L().Error("list races failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list races")
	}
	return c.JSON(http.StatusOK, races)
}

// NextRace returns the lowest-numbered race without results, along with the
// caller's current pick for it if one exists.
func (h *Handler) NextRace(c echo.Context) error {
	ctx := c.Request().Context()

	race := new(models.Race)
	err := h.db.NewSelect().Model(race).
		Where("is_completed = ?", false).
		Order("race_number ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "no open races")
		}
		zap.L().Error("next race failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load next race")
	}

	pick, err := contest.PickForRace(ctx, h.db, userID(c), race.ID)
	if err != nil {
		zap.L().Error("pick lookup failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load next race")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"race": race,
		"pick": pick,
	})
}

// CreateRace inserts a new race into the schedule. Admin only.
func (h *Handler) CreateRace(c echo.Context) error {
	var req createRaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	race := &models.Race{
		RaceNumber: req.RaceNumber,
		RaceName:   strings.TrimSpace(req.RaceName),
		RaceDate:   req.RaceDate,
		Track:      strings.TrimSpace(req.Track),
	}
	if _, err := h.db.NewInsert().Model(race).Exec(c.Request().Context()); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") ||
			strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
			return echo.NewHTTPError(http.StatusConflict, "race number already exists")
		}
		zap.L().Error("create race failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create race")
	}

	return c.JSON(http.StatusCreated, race)
}

// raceDayReached reports whether today's date is on or after the race date.
// Unparseable dates count as reached so a bad date never hides picks forever.
func raceDayReached(raceDate string) bool {
	d, err := time.Parse("2006-01-02", raceDate)
	if err != nil {
		return true
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !today.Before(d)
}
