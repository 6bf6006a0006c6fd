// Package seed populates the database: the fixed role table at every
// startup, and fake development data on demand.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"scribe/internal/models"
	"scribe/internal/repository"
)

// rolePermissions is the fixed role table. The `user` role is the
// default assigned at registration.
var rolePermissions = map[string][]models.Permission{
	"user":      {models.PermFollow, models.PermComment},
	"moderator": {models.PermFollow, models.PermComment, models.PermModerate},
	"admin":     {models.PermFollow, models.PermComment, models.PermWrite, models.PermModerate, models.PermAdmin},
}

const defaultRoleName = "user"

// SeedRoles upserts the fixed roles. It is safe to run on every
// startup: each role's mask is reset and rebuilt from the table, so
// stale bits never survive, and exactly one role ends up default.
func SeedRoles(ctx context.Context, roles repository.RoleRepository) error {
	for name, perms := range rolePermissions {
		role, err := roles.GetByName(ctx, name)
		if err != nil {
			return fmt.Errorf("looking up role %q: %w", name, err)
		}
		if role == nil {
			role = &models.Role{Name: name}
		}

		role.ResetPermissions()
		for _, perm := range perms {
			role.AddPermission(perm)
		}
		role.Default = role.Name == defaultRoleName

		if err := roles.Save(ctx, role); err != nil {
			return fmt.Errorf("saving role %q: %w", name, err)
		}
	}

	slog.Info("role table seeded", slog.Int("roles", len(rolePermissions)))
	return nil
}
