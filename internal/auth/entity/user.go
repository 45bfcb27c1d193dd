package entity

import "time"

// Role is the closed set of privileges a credential can carry. Only admin
// exists today.
type Role string

const RoleAdmin Role = "admin"

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin:
		return true
	}
	return false
}

// AdminUser is a row of the usercredentials table. PasswordHash never leaves
// the auth package.
type AdminUser struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FullName     string    `db:"fullname"`
	Role         Role      `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}
