// Command main runs the database seeder for scribe.
package main

import (
	"context"
	"flag"
	"log"

	"scribe/internal/config"
	"scribe/internal/database"
	"scribe/internal/repository"
	"scribe/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 8, "Number of users to create")
	postsPerUser := flag.Int("posts", 3, "Posts per user")
	commentsPerPost := flag.Int("comments", 4, "Comments per post")
	numDemos := flag.Int("demos", 5, "Number of gallery demos to create")
	rolesOnly := flag.Bool("roles-only", false, "Seed roles and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()

	if err := seed.SeedRoles(ctx, repository.NewRoleRepository(db)); err != nil {
		log.Fatalf("Role seeding failed: %v", err)
	}
	if *rolesOnly {
		log.Println("Roles seeded.")
		return
	}

	opts := seed.DevDataOptions{
		Users:           *numUsers,
		PostsPerUser:    *postsPerUser,
		CommentsPerPost: *commentsPerPost,
		Demos:           *numDemos,
	}
	if err := seed.SeedDevData(ctx, db, opts); err != nil {
		log.Fatalf("Dev data seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}
