// cmd/seed/main.go
// One-shot bootstrap: creates the schema, the administrator account and the
// fixed 36-race season schedule. Safe to re-run; existing races are skipped.
//
// Usage:
//
//	go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/padraicbc/pick36/config"
	"github.com/padraicbc/pick36/contest"
	bundb "github.com/padraicbc/pick36/db"
	"github.com/padraicbc/pick36/models"
)

// season2026 is the 2026 Cup Series schedule: race number, name, date, track.
var season2026 = []models.Race{
	{RaceNumber: 1, RaceName: "Daytona 500", RaceDate: "2026-02-15", Track: "Daytona International Speedway"},
	{RaceNumber: 2, RaceName: "Atlanta", RaceDate: "2026-02-22", Track: "Atlanta Motor Speedway"},
	{RaceNumber: 3, RaceName: "COTA", RaceDate: "2026-03-01", Track: "Circuit of the Americas"},
	{RaceNumber: 4, RaceName: "Phoenix", RaceDate: "2026-03-08", Track: "Phoenix Raceway"},
	{RaceNumber: 5, RaceName: "Las Vegas", RaceDate: "2026-03-15", Track: "Las Vegas Motor Speedway"},
	{RaceNumber: 6, RaceName: "Darlington", RaceDate: "2026-03-22", Track: "Darlington Raceway"},
	{RaceNumber: 7, RaceName: "Martinsville", RaceDate: "2026-03-29", Track: "Martinsville Speedway"},
	{RaceNumber: 8, RaceName: "Bristol", RaceDate: "2026-04-12", Track: "Bristol Motor Speedway"},
	{RaceNumber: 9, RaceName: "Kansas", RaceDate: "2026-04-19", Track: "Kansas Speedway"},
	{RaceNumber: 10, RaceName: "Talladega", RaceDate: "2026-04-26", Track: "Talladega Superspeedway"},
	{RaceNumber: 11, RaceName: "Texas", RaceDate: "2026-05-03", Track: "Texas Motor Speedway"},
	{RaceNumber: 12, RaceName: "Watkins Glen", RaceDate: "2026-05-10", Track: "Watkins Glen International"},
	{RaceNumber: 13, RaceName: "Coca-Cola 600", RaceDate: "2026-05-24", Track: "Charlotte Motor Speedway"},
	{RaceNumber: 14, RaceName: "Nashville", RaceDate: "2026-05-31", Track: "Nashville Superspeedway"},
	{RaceNumber: 15, RaceName: "Michigan", RaceDate: "2026-06-07", Track: "Michigan International Speedway"},
	{RaceNumber: 16, RaceName: "Pocono", RaceDate: "2026-06-14", Track: "Pocono Raceway"},
	{RaceNumber: 17, RaceName: "San Diego", RaceDate: "2026-06-21", Track: "Coronado Street Course"},
	{RaceNumber: 18, RaceName: "Sonoma", RaceDate: "2026-06-28", Track: "Sonoma Raceway"},
	{RaceNumber: 19, RaceName: "Chicagoland", RaceDate: "2026-07-05", Track: "Chicagoland Speedway"},
	{RaceNumber: 20, RaceName: "Atlanta Summer", RaceDate: "2026-07-12", Track: "Atlanta Motor Speedway"},
	{RaceNumber: 21, RaceName: "North Wilkesboro", RaceDate: "2026-07-19", Track: "North Wilkesboro Speedway"},
	{RaceNumber: 22, RaceName: "Indianapolis", RaceDate: "2026-07-26", Track: "Indianapolis Motor Speedway"},
	{RaceNumber: 23, RaceName: "Iowa", RaceDate: "2026-08-09", Track: "Iowa Speedway"},
	{RaceNumber: 24, RaceName: "Richmond", RaceDate: "2026-08-15", Track: "Richmond Raceway"},
	{RaceNumber: 25, RaceName: "New Hampshire", RaceDate: "2026-08-23", Track: "New Hampshire Motor Speedway"},
	{RaceNumber: 26, RaceName: "Daytona Summer", RaceDate: "2026-08-29", Track: "Daytona International Speedway"},
	{RaceNumber: 27, RaceName: "Darlington Playoff", RaceDate: "2026-09-06", Track: "Darlington Raceway"},
	{RaceNumber: 28, RaceName: "Gateway", RaceDate: "2026-09-13", Track: "World Wide Technology Raceway"},
	{RaceNumber: 29, RaceName: "Bristol Night", RaceDate: "2026-09-19", Track: "Bristol Motor Speedway"},
	{RaceNumber: 30, RaceName: "Kansas Playoff", RaceDate: "2026-09-27", Track: "Kansas Speedway"},
	{RaceNumber: 31, RaceName: "Las Vegas Playoff", RaceDate: "2026-10-04", Track: "Las Vegas Motor Speedway"},
	{RaceNumber: 32, RaceName: "Charlotte Oval", RaceDate: "2026-10-11", Track: "Charlotte Motor Speedway"},
	{RaceNumber: 33, RaceName: "Phoenix Playoff", RaceDate: "2026-10-18", Track: "Phoenix Raceway"},
	{RaceNumber: 34, RaceName: "Talladega Playoff", RaceDate: "2026-10-25", Track: "Talladega Superspeedway"},
	{RaceNumber: 35, RaceName: "Martinsville Playoff", RaceDate: "2026-11-01", Track: "Martinsville Speedway"},
	{RaceNumber: 36, RaceName: "Homestead Championship", RaceDate: "2026-11-08", Track: "Homestead-Miami Speedway"},
}

func main() {
	ctx := context.Background()

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatalf("create tables: %v", err)
	}
	log.Println("tables created")

	created, err := contest.EnsureAdmin(ctx, db, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail)
	if err != nil {
		log.Fatalf("ensure admin: %v", err)
	}
	if created {
		log.Printf("admin user %q created, change the password after first login", cfg.AdminUsername)
	} else {
		log.Printf("admin user %q already exists", cfg.AdminUsername)
	}

	added := 0
	for i := range season2026 {
		res, err := db.NewInsert().Model(&season2026[i]).
			On("CONFLICT (race_number) DO NOTHING").
			Exec(ctx)
		if err != nil {
			log.Fatalf("insert race %d: %v", season2026[i].RaceNumber, err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			added++
		}
	}

	fmt.Printf("seeded %d of %d races\n", added, len(season2026))
}
