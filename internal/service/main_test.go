package service

import (
	"context"
	"testing"

	"scribe/internal/config"
	"scribe/internal/database"
	"scribe/internal/repository"
	"scribe/internal/seed"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a migrated in-memory database with the role table
// seeded, matching what a freshly started server sees.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))
	require.NoError(t, seed.SeedRoles(context.Background(), repository.NewRoleRepository(db)))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Port:               "8080",
		SecretKey:          "test-secret",
		AdminAddress:       "admin@example.com",
		ActivationTokenTTL: 3600,
		AuthTokenTTL:       3600,
		PostsPerPage:       10,
		CommentsPerPage:    10,
	}
}
