// Package contest implements the pick-contest rules: one driver per race,
// no driver twice in a season, scoring picks from entered results, and the
// derived leaderboard. Everything operates on a bun.IDB so the same code
// runs inside and outside transactions.
package contest

import (
	"errors"
	"strings"
)

var (
	// ErrDriverUsed means the driver already appears in one of the user's
	// picks this season.
	ErrDriverUsed = errors.New("driver already used")
	// ErrRaceNotFound means the target race does not exist.
	ErrRaceNotFound = errors.New("race not found")
	// ErrRaceCompleted means results are in and picks for the race are locked.
	ErrRaceCompleted = errors.New("race already completed")
	// ErrUserExists means the username or email is already taken.
	ErrUserExists = errors.New("username or email already exists")
	// ErrInvalidCredentials means the username/password pair did not match.
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

// isUniqueViolation reports whether err is a unique-constraint failure.
// Postgres says "duplicate key value", SQLite says "UNIQUE constraint failed".
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "unique constraint failed")
}
