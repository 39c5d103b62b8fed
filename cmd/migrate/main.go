// cmd/migrate/main.go
// Imports users and races from a previous season's MySQL contest database
// into the local PostgreSQL database. Existing usernames and race numbers
// are skipped, so the import can be re-run safely.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/contest?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/migrate
package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/padraicbc/pick36/config"
	bundb "github.com/padraicbc/pick36/db"
	"github.com/padraicbc/pick36/models"
)

const batchSize = 500

func main() {
	ctx := context.Background()

	cfg := config.Load()

	// --- MySQL ---
	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/contest?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	// --- PostgreSQL ---
	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	// Create tables (idempotent)
	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	if err := migrateUsers(ctx, myDB, pgDB); err != nil {
		log.Fatalf("migrate users: %v", err)
	}
	if err := migrateRaces(ctx, myDB, pgDB); err != nil {
		log.Fatalf("migrate races: %v", err)
	}

	log.Println("done")
}

func migrateUsers(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) error {
	rows, err := myDB.QueryContext(ctx,
		`SELECT username, password_hash, email, is_admin, paid, created_at FROM users`)
	if err != nil {
		return err
	}
	defer rows.Close()

	var batch []models.User
	total := 0
	for rows.Next() {
		var u models.User
		var created time.Time
		if err := rows.Scan(&u.Username, &u.PasswordHash, &u.Email, &u.IsAdmin, &u.Paid, &created); err != nil {
			return err
		}
		u.CreatedAt = created
		batch = append(batch, u)

		if len(batch) == batchSize {
			if err := flushUsers(ctx, pgDB, batch); err != nil {
				return err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		if err := flushUsers(ctx, pgDB, batch); err != nil {
			return err
		}
		total += len(batch)
	}

	log.Printf("imported %d users", total)
	return nil
}

func flushUsers(ctx context.Context, db *bun.DB, users []models.User) error {
	_, err := db.NewInsert().Model(&users).
		On("CONFLICT (username) DO NOTHING").
		Exec(ctx)
	return err
}

func migrateRaces(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) error {
	rows, err := myDB.QueryContext(ctx,
		`SELECT race_number, race_name, race_date, track, is_completed FROM races`)
	if err != nil {
		return err
	}
	defer rows.Close()

	var races []models.Race
	for rows.Next() {
		var r models.Race
		if err := rows.Scan(&r.RaceNumber, &r.RaceName, &r.RaceDate, &r.Track, &r.Completed); err != nil {
			return err
		}
		races = append(races, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(races) == 0 {
		log.Println("no races to import")
		return nil
	}

	_, err = pgDB.NewInsert().Model(&races).
		On("CONFLICT (race_number) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return err
	}

	log.Printf("imported %d races", len(races))
	return nil
}
