// Package testutil provides an in-memory SQLite database wired through the
// real schema setup, so tests exercise the same bun queries that run
// against PostgreSQL in production.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	appdb "github.com/padraicbc/pick36/db"
	"github.com/padraicbc/pick36/models"
)

// OpenDB returns a fresh in-memory database with all tables and unique
// indexes created. Closed automatically when the test finishes.
func OpenDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A single connection keeps the in-memory database alive for the test.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := appdb.CreateTables(context.Background(), db); err != nil {
		t.Fatalf("create tables: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateUser inserts a user directly, bypassing password hashing. The email
// is derived from the username.
func CreateUser(t *testing.T, db *bun.DB, username string, admin bool) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		PasswordHash: "not-a-real-hash",
		Email:        fmt.Sprintf("%s@example.com", username),
		IsAdmin:      admin,
	}
	if _, err := db.NewInsert().Model(user).Exec(context.Background()); err != nil {
		t.Fatalf("insert user %q: %v", username, err)
	}
	return user
}

// CreateRace inserts a race with the given number and date.
func CreateRace(t *testing.T, db *bun.DB, number int, date string, completed bool) *models.Race {
	t.Helper()

	race := &models.Race{
		RaceNumber: number,
		RaceName:   fmt.Sprintf("Race %d", number),
		RaceDate:   date,
		Track:      fmt.Sprintf("Track %d", number),
		Completed:  completed,
	}
	if _, err := db.NewInsert().Model(race).Exec(context.Background()); err != nil {
		t.Fatalf("insert race %d: %v", number, err)
	}
	return race
}
