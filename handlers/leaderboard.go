package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/pick36/contest"
)

// Leaderboard returns the current standings: total points descending,
// username breaking ties.
func (h *Handler) Leaderboard(c echo.Context) error {
	standings, err := contest.Leaderboard(c.Request().Context(), h.db)
	if err != nil {
		zap.L().Error("leaderboard failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not compute leaderboard")
	}
	return c.JSON(http.StatusOK, standings)
}
