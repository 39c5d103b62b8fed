package contest

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Standing is one leaderboard row. Users with no picks still appear with
// zero points.
type Standing struct {
	UserID      int    `bun:"user_id" json:"userID"`
	Username    string `bun:"username" json:"username"`
	TotalPoints int    `bun:"total_points" json:"totalPoints"`
	PicksMade   int    `bun:"picks_made" json:"picksMade"`
}

// Leaderboard sums pick points per non-admin user, ordered by total points
// descending with username breaking ties.
func Leaderboard(ctx context.Context, db bun.IDB) ([]Standing, error) {
	var standings []Standing
	err := db.NewRaw(`
		SELECT u.id AS user_id, u.username,
		       COALESCE(SUM(p.points), 0) AS total_points,
		       COUNT(p.id) AS picks_made
		FROM users u
		LEFT JOIN picks p ON p.user_id = u.id
		WHERE u.is_admin = ?
		GROUP BY u.id, u.username
		ORDER BY total_points DESC, u.username ASC`,
		false,
	).Scan(ctx, &standings)
	if err != nil {
		return nil, fmt.Errorf("computing leaderboard: %w", err)
	}
	return standings, nil
}
