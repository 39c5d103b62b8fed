package models

import "github.com/uptrace/bun"

// Result holds one driver's finishing data for a race. Rows for a race are
// fully replaced whenever results are re-entered.
type Result struct {
	bun.BaseModel `bun:"table:results,alias:r"`

	ID             int    `bun:"id,pk,autoincrement" json:"id"`
	RaceID         int    `bun:"race_id,notnull" json:"raceID"`
	DriverName     string `bun:"driver_name,notnull" json:"driverName"`
	FinishPosition int    `bun:"finish_position,notnull" json:"finishPosition"`
	Points         int    `bun:"points,notnull" json:"points"`

	Race *Race `bun:"rel:belongs-to,join:race_id=id" json:"-"`
}
