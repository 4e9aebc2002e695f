package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "superAdmin"
)

var roleRank = map[UserRole]int{
	RoleUser:       1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

// Satisfies reports whether r grants at least the privileges of required.
func (r UserRole) Satisfies(required UserRole) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	return have >= roleRank[required]
}

type User struct {
	Base
	Firstname            string      `db:"firstname"`
	Lastname             string      `db:"lastname"`
	Email                string      `db:"email"`
	Mobile               string      `db:"mobile"`
	PasswordHash         string      `db:"password"`
	Role                 UserRole    `db:"role"`
	IsBlocked            bool        `db:"is_blocked"`
	Address              *string     `db:"address"`
	RefreshToken         *string     `db:"refresh_token"`
	PasswordChangedAt    *time.Time  `db:"password_changed_at"`
	PasswordResetToken   *string     `db:"password_reset_token"`
	PasswordResetExpires *time.Time  `db:"password_reset_expires"`
	Wishlist             []uuid.UUID `db:"-"`
}

// ClearReset drops any outstanding reset token.
func (u *User) ClearReset() {
	u.PasswordResetToken = nil
	u.PasswordResetExpires = nil
}
