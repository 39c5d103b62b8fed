package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Pick is a user's single driver selection for one race. Points stay at
// zero until results are entered for the race. Uniqueness on both
// (user_id, race_id) and (user_id, driver_name) is enforced by indexes
// created in db.CreateTables.
type Pick struct {
	bun.BaseModel `bun:"table:picks,alias:p"`

	ID         int       `bun:"id,pk,autoincrement" json:"id"`
	UserID     int       `bun:"user_id,notnull" json:"userID"`
	RaceID     int       `bun:"race_id,notnull" json:"raceID"`
	DriverName string    `bun:"driver_name,notnull" json:"driverName"`
	Points     int       `bun:"points,notnull,default:0" json:"points"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"-"`
	Race *Race `bun:"rel:belongs-to,join:race_id=id" json:"-"`
}
