// Package models contains data structures for the application's domain models.
package models

// Permission is a single named capability, represented as one bit in a
// role's permission mask.
type Permission int

const (
	PermFollow   Permission = 1 << iota // 1
	PermComment                         // 2
	PermWrite                           // 4
	PermModerate                        // 8
	PermAdmin                           // 16
)

// AllPermissions lists every defined permission bit.
func AllPermissions() []Permission {
	return []Permission{PermFollow, PermComment, PermWrite, PermModerate, PermAdmin}
}

// Role groups users under a named permission mask. At most one role is
// flagged as the default assigned at registration.
type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:16;unique;not null" json:"name"`
	Default     bool   `gorm:"default:false;index" json:"default"`
	Permissions int    `gorm:"not null;default:0" json:"permissions"`
	Users       []User `gorm:"foreignKey:RoleID" json:"-"`
}

// AddPermission sets the permission bit if it is not already set.
func (r *Role) AddPermission(perm Permission) {
	if !r.HasPermission(perm) {
		r.Permissions |= int(perm)
	}
}

// RemovePermission clears the permission bit if it is set.
func (r *Role) RemovePermission(perm Permission) {
	if r.HasPermission(perm) {
		r.Permissions &^= int(perm)
	}
}

// ResetPermissions clears the whole mask.
func (r *Role) ResetPermissions() {
	r.Permissions = 0
}

// HasPermission reports whether the mask contains every bit of perm.
func (r *Role) HasPermission(perm Permission) bool {
	return r.Permissions&int(perm) == int(perm)
}
