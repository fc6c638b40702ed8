// Package models contains the persistence-layer data structures of the
// server: user accounts, prediction records, and sessions.
package models

import "time"

// User is a registered account. Username and email are globally unique.
// Accounts are created at registration and never updated or deleted.
type User struct {
	ID           int64
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
