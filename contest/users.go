package contest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"

	"github.com/padraicbc/pick36/models"
)

// CreateUser stores a new user with a bcrypt hash of the password.
// Returns ErrUserExists if the username or email is already taken.
func CreateUser(ctx context.Context, db bun.IDB, username, password, email string, isAdmin bool) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, errors.New("username is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		IsAdmin:      isAdmin,
	}
	if _, err := db.NewInsert().Model(user).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// VerifyUser checks the username/password pair and returns the user record
// without its hash. Returns ErrInvalidCredentials on any mismatch.
func VerifyUser(ctx context.Context, db bun.IDB, username, password string) (*models.User, error) {
	user := new(models.User)
	err := db.NewSelect().Model(user).
		Where("username = ?", strings.TrimSpace(username)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}

// EnsureAdmin creates the bootstrap administrator account if it does not
// exist. Returns true when the account was created on this call.
func EnsureAdmin(ctx context.Context, db bun.IDB, username, password, email string) (bool, error) {
	exists, err := db.NewSelect().Model((*models.User)(nil)).
		Where("username = ?", username).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("checking admin: %w", err)
	}
	if exists {
		return false, nil
	}

	if _, err := CreateUser(ctx, db, username, password, email, true); err != nil {
		// Lost a startup race with another instance; the account is there.
		if errors.Is(err, ErrUserExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Participants returns all non-admin users ordered by username, without
// password hashes.
func Participants(ctx context.Context, db bun.IDB) ([]models.User, error) {
	var users []models.User
	err := db.NewSelect().Model(&users).
		ExcludeColumn("password_hash").
		Where("is_admin = ?", false).
		Order("username ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// SetPaid updates a user's payment flag.
func SetPaid(ctx context.Context, db bun.IDB, userID int, paid bool) error {
	res, err := db.NewUpdate().Model((*models.User)(nil)).
		Set("paid = ?", paid).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("updating payment status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.New("user not found")
	}
	return nil
}
