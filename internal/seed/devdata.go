package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"scribe/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// DevDataOptions controls how much fake content gets generated.
type DevDataOptions struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
	Demos           int
}

// DefaultDevDataOptions returns a small but browsable data set.
func DefaultDevDataOptions() DevDataOptions {
	return DevDataOptions{Users: 8, PostsPerUser: 3, CommentsPerPost: 4, Demos: 5}
}

// SeedDevData fills the database with fake users, posts, threaded
// comments and gallery entries. Development and testing only; roles
// must already be seeded.
func SeedDevData(ctx context.Context, db *gorm.DB, opts DevDataOptions) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var defaultRole models.Role
	if err := db.WithContext(ctx).Where(`"default" = ?`, true).First(&defaultRole).Error; err != nil {
		return fmt.Errorf("default role missing, run role seeding first: %w", err)
	}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    gofakeit.Email(),
			RoleID:   &defaultRole.ID,
			Active:   true,
			Name:     gofakeit.Name(),
			Location: gofakeit.City(),
			AboutMe:  gofakeit.Sentence(12),
		}
		if err := user.SetPassword("password123"); err != nil {
			return err
		}
		if err := db.WithContext(ctx).Create(user).Error; err != nil {
			return err
		}
		users = append(users, user)
	}

	var posts []*models.Post
	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			title := gofakeit.Sentence(5)
			post := &models.Post{
				Title:     title,
				Slug:      fmt.Sprintf("%s-%s", slug.Make(title), gofakeit.LetterN(6)),
				AuthorID:  user.ID,
				Body:      gofakeit.Paragraph(2, 4, 8, "\n\n"),
				Summary:   gofakeit.Sentence(10),
				Timestamp: time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
			}
			if err := db.WithContext(ctx).Create(post).Error; err != nil {
				return err
			}
			posts = append(posts, post)
		}
	}

	commentCount := 0
	for _, post := range posts {
		var thread []*models.Comment
		for i := 0; i < opts.CommentsPerPost; i++ {
			body := gofakeit.Sentence(8 + r.Intn(10))
			comment := &models.Comment{
				PostID:   post.ID,
				AuthorID: users[r.Intn(len(users))].ID,
				Body:     body,
				BodyHTML: models.RenderBody(body),
			}
			// reply to an earlier comment on the same post half the time
			if len(thread) > 0 && r.Intn(2) == 0 {
				comment.ParentID = &thread[r.Intn(len(thread))].ID
			}
			if err := db.WithContext(ctx).Create(comment).Error; err != nil {
				return err
			}
			thread = append(thread, comment)
			commentCount++
		}
	}

	for i := 0; i < opts.Demos; i++ {
		title := gofakeit.Sentence(4)
		demo := &models.Demo{
			Title:   title,
			Slug:    slug.Make(title),
			Summary: gofakeit.Sentence(10),
			Body:    gofakeit.Paragraph(1, 3, 6, "\n"),
		}
		if err := db.WithContext(ctx).Create(demo).Error; err != nil {
			return err
		}
	}

	slog.Info("dev data seeded",
		slog.Int("users", len(users)),
		slog.Int("posts", len(posts)),
		slog.Int("comments", commentCount),
		slog.Int("demos", opts.Demos),
	)
	return nil
}
