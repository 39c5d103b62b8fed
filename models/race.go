package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Race is one event in the 36-race season schedule.
// RaceDate is stored as YYYY-MM-DD text.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	ID         int       `bun:"id,pk,autoincrement" json:"id"`
	RaceNumber int       `bun:"race_number,notnull,unique" json:"raceNumber"`
	RaceName   string    `bun:"race_name,notnull" json:"raceName"`
	RaceDate   string    `bun:"race_date,notnull" json:"raceDate"`
	Track      string    `bun:"track,notnull" json:"track"`
	Completed  bool      `bun:"is_completed,notnull,default:false" json:"completed"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
