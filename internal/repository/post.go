// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"time"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HashtagActivity is one hashtag occurrence row joined with the like count of
// its post, produced by the trending window scan.
type HashtagActivity struct {
	Tag       string
	LikeCount int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	GetByHashtag(ctx context.Context, tag string, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Timeline(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, userID, postID uint) (bool, error)
	Unlike(ctx context.Context, userID, postID uint) (bool, error)
	ScanHashtagActivity(ctx context.Context, since time.Time) ([]HashtagActivity, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	// Hashtag and mention occurrence rows ride along as associations.
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Hashtags", hashtagOrder).
		Preload("Mentions", mentionOrder).
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Hashtags", hashtagOrder).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(clampLimit(limit)).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) GetByHashtag(ctx context.Context, tag string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Hashtags", hashtagOrder).
		Where("posts.id IN (?)", r.db.
			Model(&models.PostHashtag{}).
			Select("post_id").
			Where("tag = ?", tag)).
		Order("created_at DESC").
		Limit(clampLimit(limit)).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// Timeline returns the user's own posts plus posts of everyone they follow,
// newest first.
func (r *postRepository) Timeline(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), userID).
		Preload("User").
		Preload("Hashtags", hashtagOrder).
		Where("user_id = ? OR user_id IN (?)", userID, r.db.
			Model(&models.Follow{}).
			Select("followee_id").
			Where("follower_id = ?", userID)).
		Order("created_at DESC").
		Limit(clampLimit(limit)).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func hashtagOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func mentionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM post_likes WHERE post_likes.post_id = posts.id AND post_likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

// Update saves the post and rewrites its hashtag and mention rows inside one
// transaction, so derived rows always reflect the stored content.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Hashtags", "Mentions", "User").Save(post).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostHashtag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostMention{}).Error; err != nil {
			return err
		}
		for i := range post.Hashtags {
			post.Hashtags[i].ID = 0
			post.Hashtags[i].PostID = post.ID
		}
		for i := range post.Mentions {
			post.Mentions[i].ID = 0
			post.Mentions[i].PostID = post.ID
		}
		if len(post.Hashtags) > 0 {
			if err := tx.Create(&post.Hashtags).Error; err != nil {
				return err
			}
		}
		if len(post.Mentions) > 0 {
			if err := tx.Create(&post.Mentions).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// Like inserts the like row conflict-free; it reports whether a row was
// actually inserted. Zero rows affected means the like already existed.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.PostLike{UserID: userID, PostID: postID})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
	}
	return result.RowsAffected > 0, nil
}

// Unlike hard-deletes the like row; it reports whether a row existed.
func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.PostLike{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
	}
	return result.RowsAffected > 0, nil
}

// ScanHashtagActivity returns one row per hashtag occurrence on a non-deleted
// post created at or after since, joined with the post's like count. The
// trending service aggregates the rows in memory.
func (r *postRepository) ScanHashtagActivity(ctx context.Context, since time.Time) ([]HashtagActivity, error) {
	var rows []HashtagActivity
	err := r.db.WithContext(ctx).
		Model(&models.PostHashtag{}).
		Select("post_hashtags.tag as tag, "+
			"(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id) as like_count").
		Joins("JOIN posts ON posts.id = post_hashtags.post_id").
		Where("posts.deleted_at IS NULL AND posts.created_at >= ?", since).
		Scan(&rows).Error
	return rows, err
}
