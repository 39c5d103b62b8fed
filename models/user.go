package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User is a contest participant with bcrypt-hashed password.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int       `bun:"id,pk,autoincrement" json:"id"`
	Username     string    `bun:"username,notnull,unique" json:"username"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	IsAdmin      bool      `bun:"is_admin,notnull,default:false" json:"isAdmin"`
	Paid         bool      `bun:"paid,notnull,default:false" json:"paid"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
