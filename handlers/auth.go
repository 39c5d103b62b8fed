package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/pick36/contest"
	mw "github.com/padraicbc/pick36/middleware"
)

type credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=30"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// Signup creates a regular participant account.
func (h *Handler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := contest.CreateUser(c.Request().Context(), h.db, req.Username, req.Password, req.Email, false)
	if err != nil {
		if errors.Is(err, contest.ErrUserExists) {
			return echo.NewHTTPError(http.StatusConflict, "username or email already exists")
		}
		zap.L().Error("signup failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create account")
	}

	return c.JSON(http.StatusCreated, user)
}

// Signin validates credentials and returns a JWT token valid for 30 days.
func (h *Handler) Signin(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	creds.Username = strings.TrimSpace(creds.Username)

	user, err := contest.VerifyUser(c.Request().Context(), h.db, creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, contest.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "incorrect username or password")
		}
		zap.L().Error("signin failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "could not sign in")
	}

	expiresAt := time.Now().AddDate(0, 0, 30)
	claims := &mw.Claims{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.JWTKey)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"token": tokenString,
		"user":  user,
	})
}
