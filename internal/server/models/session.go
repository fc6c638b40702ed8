package models

import "time"

// Session is server-held proof of a successful login, referenced by the
// browser via an opaque token. Created at login, destroyed at logout or
// expiry.
type Session struct {
	ID        string
	UserName  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
