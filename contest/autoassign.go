package contest

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/uptrace/bun"
)

type pendingUser struct {
	ID       int    `bun:"id"`
	Username string `bun:"username"`
}

// UsersWithoutPick returns non-admin users with no pick recorded for the race.
func usersWithoutPick(ctx context.Context, db bun.IDB, raceID int) ([]pendingUser, error) {
	var users []pendingUser
	err := db.NewRaw(`
		SELECT u.id, u.username
		FROM users u
		WHERE u.is_admin = ?
		AND u.id NOT IN (SELECT user_id FROM picks WHERE race_id = ?)`,
		false, raceID,
	).Scan(ctx, &users)
	if err != nil {
		return nil, fmt.Errorf("listing users without pick: %w", err)
	}
	return users, nil
}

// AutoAssign gives every non-admin user without a pick for the race a
// random driver from candidates, minus the drivers that user has already
// burned. Assignments go through Submit so all pick rules still apply.
// Users who cannot be assigned are reported as "username: reason" strings.
// A second run right after assigns nothing: every user then has a pick.
func AutoAssign(ctx context.Context, db *bun.DB, raceID int, candidates []string) (int, []string, error) {
	pending, err := usersWithoutPick(ctx, db, raceID)
	if err != nil {
		return 0, nil, err
	}

	assigned := 0
	var errs []string
	for _, user := range pending {
		used, err := UsedDrivers(ctx, db, user.ID)
		if err != nil {
			return assigned, errs, err
		}

		available := make([]string, 0, len(candidates))
		for _, d := range candidates {
			if !slices.Contains(used, d) {
				available = append(available, d)
			}
		}
		if len(available) == 0 {
			errs = append(errs, fmt.Sprintf("%s: no available drivers left", user.Username))
			continue
		}

		driver := available[rand.IntN(len(available))]
		if err := Submit(ctx, db, user.ID, raceID, driver); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %s", user.Username, err))
			continue
		}
		assigned++
	}

	return assigned, errs, nil
}
