package models

// User is a stored credential: a unique username, a bcrypt password hash and
// a role label. Credentials are append-only; there is no update or delete.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
}
