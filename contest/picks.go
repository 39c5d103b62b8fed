package contest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/padraicbc/pick36/models"
)

// UserPick is one row of a user's pick history joined with its race.
type UserPick struct {
	RaceNumber int    `bun:"race_number" json:"raceNumber"`
	RaceName   string `bun:"race_name" json:"raceName"`
	RaceDate   string `bun:"race_date" json:"raceDate"`
	Completed  bool   `bun:"is_completed" json:"completed"`
	DriverName string `bun:"driver_name" json:"driverName"`
	Points     int    `bun:"points" json:"points"`
}

// RacePick is one participant's pick for a race, as shown on the all-picks view.
type RacePick struct {
	Username   string `bun:"username" json:"username"`
	DriverName string `bun:"driver_name" json:"driverName"`
	Points     int    `bun:"points" json:"points"`
}

// Submit records a pick for (userID, raceID). Validation order matters:
// the season-wide driver check runs first, so re-submitting a driver the
// user already holds is rejected even for the same race. The target race
// must exist and still be open. A pick already on file for the race is
// replaced in place via the (user_id, race_id) upsert.
func Submit(ctx context.Context, db bun.IDB, userID, raceID int, driver string) error {
	driver = strings.TrimSpace(driver)
	if driver == "" {
		return errors.New("driver name is required")
	}

	used, err := db.NewSelect().Model((*models.Pick)(nil)).
		Where("user_id = ?", userID).
		Where("driver_name = ?", driver).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("checking used drivers: %w", err)
	}
	if used {
		return fmt.Errorf("you have already used %s in a previous race: %w", driver, ErrDriverUsed)
	}

	race := new(models.Race)
	err = db.NewSelect().Model(race).Where("id = ?", raceID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRaceNotFound
		}
		return fmt.Errorf("looking up race: %w", err)
	}
	if race.Completed {
		return ErrRaceCompleted
	}

	pick := &models.Pick{UserID: userID, RaceID: raceID, DriverName: driver}
	_, err = db.NewInsert().Model(pick).
		On("CONFLICT (user_id, race_id) DO UPDATE").
		Set("driver_name = EXCLUDED.driver_name").
		Exec(ctx)
	if err != nil {
		// The (user_id, driver_name) index tripped: a concurrent submit won.
		if isUniqueViolation(err) {
			return fmt.Errorf("you have already used %s in a previous race: %w", driver, ErrDriverUsed)
		}
		return fmt.Errorf("saving pick: %w", err)
	}
	return nil
}

// UsedDrivers returns every driver the user has picked this season.
func UsedDrivers(ctx context.Context, db bun.IDB, userID int) ([]string, error) {
	var drivers []string
	err := db.NewSelect().Model((*models.Pick)(nil)).
		Column("driver_name").
		Where("user_id = ?", userID).
		Scan(ctx, &drivers)
	if err != nil {
		return nil, fmt.Errorf("listing used drivers: %w", err)
	}
	return drivers, nil
}

// PickForRace returns the user's pick for a race, or nil if none exists.
func PickForRace(ctx context.Context, db bun.IDB, userID, raceID int) (*models.Pick, error) {
	pick := new(models.Pick)
	err := db.NewSelect().Model(pick).
		Where("user_id = ?", userID).
		Where("race_id = ?", raceID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("looking up pick: %w", err)
	}
	return pick, nil
}

// PicksByUser returns the user's full pick history ordered by race number.
func PicksByUser(ctx context.Context, db bun.IDB, userID int) ([]UserPick, error) {
	var picks []UserPick
	err := db.NewRaw(`
		SELECT rc.race_number, rc.race_name, rc.race_date, rc.is_completed,
		       p.driver_name, p.points
		FROM picks p
		INNER JOIN races rc ON rc.id = p.race_id
		WHERE p.user_id = ?
		ORDER BY rc.race_number`,
		userID,
	).Scan(ctx, &picks)
	if err != nil {
		return nil, fmt.Errorf("listing picks: %w", err)
	}
	return picks, nil
}

// AllPicksForRace returns every non-admin participant's pick for a race,
// ordered by username.
func AllPicksForRace(ctx context.Context, db bun.IDB, raceID int) ([]RacePick, error) {
	var picks []RacePick
	err := db.NewRaw(`
		SELECT u.username, p.driver_name, p.points
		FROM picks p
		INNER JOIN users u ON u.id = p.user_id
		WHERE p.race_id = ? AND u.is_admin = ?
		ORDER BY u.username`,
		raceID, false,
	).Scan(ctx, &picks)
	if err != nil {
		return nil, fmt.Errorf("listing race picks: %w", err)
	}
	return picks, nil
}
