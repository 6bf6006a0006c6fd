package models

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Identity is the authenticated-or-anonymous actor behind a request.
// Handlers authorize against it without null-checking a user pointer.
type Identity interface {
	Can(perm Permission) bool
	IsAdmin() bool
}

// User represents a registered account.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"size:64;unique;not null" json:"username"`
	Email        string         `gorm:"size:254;unique;not null" json:"email"`
	PasswordHash string         `gorm:"size:128;not null" json:"-"`
	RoleID       *uint          `json:"role_id,omitempty"`
	Role         *Role          `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Active       bool           `gorm:"default:false" json:"active"`
	Name         string         `gorm:"size:64" json:"name"`
	Location     string         `gorm:"size:64" json:"location"`
	AboutMe      string         `gorm:"type:text" json:"about_me"`
	MemberSince  time.Time      `gorm:"autoCreateTime" json:"member_since"`
	LastSeen     time.Time      `gorm:"autoCreateTime" json:"last_seen"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Posts        []Post         `gorm:"foreignKey:AuthorID" json:"-"`
	Comments     []Comment      `gorm:"foreignKey:AuthorID" json:"-"`
}

// Password always fails: the plaintext is never stored and the hash is
// write-only. Callers must go through SetPassword/VerifyPassword.
func (u *User) Password() (string, error) {
	return "", NewAccessError("password is not a readable attribute")
}

// SetPassword replaces the stored hash with a bcrypt hash of plaintext.
func (u *User) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return NewInternalError(err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword compares plaintext against the stored hash.
func (u *User) VerifyPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}

// Can reports whether the user's role grants perm. A user without a
// role can do nothing.
func (u *User) Can(perm Permission) bool {
	return u.Role != nil && u.Role.HasPermission(perm)
}

// IsAdmin reports whether the user holds the ADMIN permission.
func (u *User) IsAdmin() bool {
	return u.Can(PermAdmin)
}

// AvatarURL returns the gravatar identicon URL for the user's email.
func (u *User) AvatarURL(size int) string {
	digest := md5.Sum([]byte(strings.ToLower(u.Email)))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=identicon&s=%d",
		hex.EncodeToString(digest[:]), size)
}

// UserJSON is the read-only API representation of a user.
type UserJSON struct {
	URL         string    `json:"url"`
	Username    string    `json:"username"`
	MemberSince time.Time `json:"member_since"`
	LastSeen    time.Time `json:"last_seen"`
	PostsURL    string    `json:"posts_url"`
	PostCount   int64     `json:"post_count"`
}

// APIView builds the external JSON contract for the user.
func (u *User) APIView(postCount int64) UserJSON {
	return UserJSON{
		URL:         fmt.Sprintf("/api/users/%d", u.ID),
		Username:    u.Username,
		MemberSince: u.MemberSince,
		LastSeen:    u.LastSeen,
		PostsURL:    fmt.Sprintf("/api/users/%d/posts", u.ID),
		PostCount:   postCount,
	}
}

// AnonymousUser is the identity of an unauthenticated request.
type AnonymousUser struct{}

// Can always denies for anonymous users.
func (AnonymousUser) Can(Permission) bool { return false }

// IsAdmin always denies for anonymous users.
func (AnonymousUser) IsAdmin() bool { return false }
