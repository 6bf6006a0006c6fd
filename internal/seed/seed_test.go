package seed

import (
	"context"
	"testing"

	"scribe/internal/database"
	"scribe/internal/models"
	"scribe/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func TestSeedRoles(t *testing.T) {
	db := setupTestDB(t)
	roles := repository.NewRoleRepository(db)
	ctx := context.Background()

	require.NoError(t, SeedRoles(ctx, roles))

	t.Run("CreatesAllRoles", func(t *testing.T) {
		all, err := roles.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("UserIsDefault", func(t *testing.T) {
		def, err := roles.GetDefault(ctx)
		require.NoError(t, err)
		require.NotNil(t, def)
		assert.Equal(t, "user", def.Name)
	})

	t.Run("ExactlyOneDefault", func(t *testing.T) {
		all, err := roles.List(ctx)
		require.NoError(t, err)
		defaults := 0
		for _, r := range all {
			if r.Default {
				defaults++
			}
		}
		assert.Equal(t, 1, defaults)
	})

	t.Run("Masks", func(t *testing.T) {
		user, err := roles.GetByName(ctx, "user")
		require.NoError(t, err)
		assert.True(t, user.HasPermission(models.PermFollow))
		assert.True(t, user.HasPermission(models.PermComment))
		assert.False(t, user.HasPermission(models.PermWrite))
		assert.False(t, user.HasPermission(models.PermModerate))

		mod, err := roles.GetByName(ctx, "moderator")
		require.NoError(t, err)
		assert.True(t, mod.HasPermission(models.PermModerate))
		assert.False(t, mod.HasPermission(models.PermAdmin))

		admin, err := roles.GetByName(ctx, "admin")
		require.NoError(t, err)
		for _, p := range models.AllPermissions() {
			assert.True(t, admin.HasPermission(p))
		}
	})
}

func TestSeedRolesIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	roles := repository.NewRoleRepository(db)
	ctx := context.Background()

	require.NoError(t, SeedRoles(ctx, roles))
	first, err := roles.List(ctx)
	require.NoError(t, err)

	require.NoError(t, SeedRoles(ctx, roles))
	second, err := roles.List(ctx)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Permissions, second[i].Permissions)
		assert.Equal(t, first[i].Default, second[i].Default)
	}
}

func TestSeedRolesRepairsCorruptedMask(t *testing.T) {
	db := setupTestDB(t)
	roles := repository.NewRoleRepository(db)
	ctx := context.Background()

	require.NoError(t, SeedRoles(ctx, roles))

	// Hand the user role extra bits and drop the default flag.
	user, err := roles.GetByName(ctx, "user")
	require.NoError(t, err)
	user.AddPermission(models.PermAdmin)
	user.Default = false
	require.NoError(t, roles.Save(ctx, user))

	require.NoError(t, SeedRoles(ctx, roles))

	user, err = roles.GetByName(ctx, "user")
	require.NoError(t, err)
	assert.False(t, user.HasPermission(models.PermAdmin))
	assert.True(t, user.HasPermission(models.PermFollow))
	assert.True(t, user.Default)
}

func TestSeedDevData(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	t.Run("RequiresRoles", func(t *testing.T) {
		err := SeedDevData(ctx, db, DefaultDevDataOptions())
		assert.Error(t, err)
	})

	require.NoError(t, SeedRoles(ctx, repository.NewRoleRepository(db)))

	opts := DevDataOptions{Users: 3, PostsPerUser: 2, CommentsPerPost: 2, Demos: 1}
	require.NoError(t, SeedDevData(ctx, db, opts))

	var userCount, postCount, commentCount, demoCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Post{}).Count(&postCount)
	db.Model(&models.Comment{}).Count(&commentCount)
	db.Model(&models.Demo{}).Count(&demoCount)

	assert.Equal(t, int64(3), userCount)
	assert.Equal(t, int64(6), postCount)
	assert.Equal(t, int64(12), commentCount)
	assert.Equal(t, int64(1), demoCount)

	t.Run("CommentsHaveRenderedBodies", func(t *testing.T) {
		var comments []models.Comment
		require.NoError(t, db.Find(&comments).Error)
		for _, c := range comments {
			assert.Equal(t, models.RenderBody(c.Body), c.BodyHTML)
		}
	})
}
