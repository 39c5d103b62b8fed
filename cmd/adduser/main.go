// cmd/adduser/main.go
// Creates or updates a user in the database. Useful for resetting a
// password or promoting an account to admin without touching SQL.
//
// Usage:
//
//	go run ./cmd/adduser -username mike -password testing -email mike@example.com
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/padraicbc/pick36/config"
	bundb "github.com/padraicbc/pick36/db"
	"github.com/padraicbc/pick36/models"
)

func main() {
	username := flag.String("username", "", "username (required)")
	password := flag.String("password", "", "plain-text password (required)")
	email := flag.String("email", "", "email address (required for new users)")
	admin := flag.Bool("admin", false, "grant admin access")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("both -username and -password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt:", err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	ctx := context.Background()

	exists, err := db.NewSelect().Model((*models.User)(nil)).
		Where("username = ?", *username).
		Exists(ctx)
	if err != nil {
		log.Fatal("look up user:", err)
	}
	if !exists && *email == "" {
		log.Fatal("-email is required when creating a new user")
	}

	user := &models.User{
		Username:     *username,
		PasswordHash: string(hash),
		Email:        *email,
		IsAdmin:      *admin,
	}

	q := db.NewInsert().Model(user).
		On("CONFLICT (username) DO UPDATE").
		Set("password_hash = EXCLUDED.password_hash").
		Set("is_admin = EXCLUDED.is_admin")
	// Leave the stored email alone unless a new one was given.
	if *email != "" {
		q = q.Set("email = EXCLUDED.email")
	}
	if _, err := q.Exec(ctx); err != nil {
		log.Fatal("insert user:", err)
	}

	fmt.Printf("user %q saved\n", *username)
}
