package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is the only persisted document. Password always holds a bcrypt hash.
// ResetToken and ResetTokenExpiry are set and cleared together.
type User struct {
	ID               bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name             string        `bson:"name" json:"name"`
	Email            string        `bson:"email" json:"email"`
	Password         string        `bson:"password" json:"password"`
	ResetToken       *string       `bson:"resetToken" json:"resetToken"`
	ResetTokenExpiry *time.Time    `bson:"resetTokenExpiry" json:"resetTokenExpiry"`
}

// HasActiveReset reports whether the user holds a reset token that has not expired at now.
func (u *User) HasActiveReset(now time.Time) bool {
	if u.ResetToken == nil || u.ResetTokenExpiry == nil {
		return false
	}
	return u.ResetTokenExpiry.After(now)
}

// SetReset stores a fresh token together with its expiry.
func (u *User) SetReset(token string, expiresAt time.Time) {
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiresAt
}

// ClearReset drops the reset token and its expiry.
func (u *User) ClearReset() {
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
}

type AddUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
