// Package model defines the records the site stores and serves.
//
// JSON tags use camelCase because that is what the front-end already speaks
// (sportCategoryId, isOkb, imageUrl...). The db tags document the column each
// field lives in when a SQL store is used.
package model

import "time"

// User is an admin account.
//
// The password is only ever kept as a bcrypt hash and never serialized.
type User struct {
	ID           int       `json:"id"        db:"id"`
	Username     string    `json:"username"  db:"username"` // unique
	PasswordHash string    `json:"-"         db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
