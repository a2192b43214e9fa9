package seed

import (
	"fmt"
	"log"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// Seed populates the database with test data: users, a follow mesh, posts
// with hashtags, comments with replies, and likes.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	if err := createFollowMesh(f, users); err != nil {
		return fmt.Errorf("failed to create follow graph: %w", err)
	}
	log.Println("✓ follow graph created")

	posts, err := createPosts(f, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := createEngagement(f, users, posts); err != nil {
		return fmt.Errorf("failed to create comments and likes: %w", err)
	}
	log.Println("✓ comments and likes created")

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE notifications, comment_likes, comments, post_likes,
		post_mentions, post_hashtags, posts, follows, users
		RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include some specific users for consistency if cleaning
	if count >= 3 {
		baseUsers := []string{"alice", "bob", "test"}
		for _, name := range baseUsers {
			username := name
			user, err := f.CreateUser(func(u *models.User) {
				u.Username = username
				u.Email = fmt.Sprintf("%s@example.com", username)
				u.Bio = "One of the OGs."
			})
			if err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			log.Printf("Failed to create user %d: %v", i, err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 && i > 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

// createFollowMesh gives every user a handful of followees so timelines are
// non-empty from the start.
func createFollowMesh(f *Factory, users []*models.User) error {
	if len(users) < 2 {
		return nil
	}
	for i, follower := range users {
		count := f.rng.Intn(5) + 1
		seen := map[int]bool{i: true}
		for j := 0; j < count; j++ {
			target := f.rng.Intn(len(users))
			if seen[target] {
				continue
			}
			seen[target] = true
			if err := f.CreateFollow(follower, users[target]); err != nil {
				return err
			}
		}
	}
	return nil
}

func createPosts(f *Factory, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		user := users[f.rng.Intn(len(users))]
		post, err := f.CreatePost(user)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)

		if i%100 == 0 && i > 0 {
			log.Printf("Created %d posts...", i)
		}
	}
	return posts, nil
}

// createEngagement adds comments (with the occasional reply) and likes to a
// random subset of posts.
func createEngagement(f *Factory, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		commentCount := f.rng.Intn(4)
		var roots []*models.Comment
		for i := 0; i < commentCount; i++ {
			author := users[f.rng.Intn(len(users))]
			var parent *models.Comment
			if len(roots) > 0 && f.rng.Float32() < 0.3 {
				parent = roots[f.rng.Intn(len(roots))]
			}
			comment, err := f.CreateComment(author, post, parent)
			if err != nil {
				return err
			}
			if parent == nil {
				roots = append(roots, comment)
			}
		}

		likeCount := f.rng.Intn(6)
		seen := map[uint]bool{}
		for i := 0; i < likeCount; i++ {
			liker := users[f.rng.Intn(len(users))]
			if seen[liker.ID] {
				continue
			}
			seen[liker.ID] = true
			if err := f.CreatePostLike(liker, post); err != nil {
				return err
			}
		}
	}
	return nil
}
