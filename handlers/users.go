package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/pick36/contest"
)

// Users returns all non-admin participants with payment status. Admin only.
func (h *Handler) Users(c echo.Context) error {
	users, err := contest.Participants(c.Request().Context(), h.db)
	if err != nil {
		zap.L().Error("list users failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list users")
	}
	return c.JSON(http.StatusOK, users)
}

// SetPaid toggles a participant's payment flag. Admin only.
func (h *Handler) SetPaid(c echo.Context) error {
	uid, err := strconv.Atoi(c.QueryParam("userID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing or bad userID param")
	}
	paid, err := strconv.ParseBool(c.QueryParam("paid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing or bad paid param")
	}

	if err := contest.SetPaid(c.Request().Context(), h.db, uid, paid); err != nil {
		zap.L().Error("set paid failed", zap.Int("userID", uid), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not update payment status")
	}
	return c.NoContent(http.StatusOK)
}

// ExportUsers streams the participant list as a CSV download. Admin only.
func (h *Handler) ExportUsers(c echo.Context) error {
	users, err := contest.Participants(c.Request().Context(), h.db)
	if err != nil {
		zap.L().Error("export users failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not export users")
	}

	filename := fmt.Sprintf("participants_%s.csv", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"Username", "Email", "Paid", "Join Date"}); err != nil {
		return err
	}
	for _, u := range users {
		paid := "No"
		if u.Paid {
			paid = "Yes"
		}
		record := []string{u.Username, u.Email, paid, u.CreatedAt.Format("2006-01-02")}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
