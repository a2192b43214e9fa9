// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxContentRunes is the upper bound, in Unicode code points, for post and
// comment content.
const MaxContentRunes = 280

// Post represents a short post in the Ripple application.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`
	UserID  uint   `gorm:"not null;index:idx_posts_user_created" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	// Hashtags and Mentions are derived from Content at write time and
	// rewritten whenever Content changes.
	Hashtags []PostHashtag `gorm:"foreignKey:PostID" json:"hashtags,omitempty"`
	Mentions []PostMention `gorm:"foreignKey:PostID" json:"mentions,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `gorm:"index:idx_posts_user_created" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostHashtag is one literal hashtag occurrence in a post's content.
// Duplicate tags in one post produce one row each; Position preserves the
// occurrence order within the content.
type PostHashtag struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	PostID   uint   `gorm:"not null;index" json:"-"`
	Tag      string `gorm:"size:280;not null;index" json:"tag"`
	Position int    `gorm:"not null" json:"-"`
}

// TableName specifies the table name for GORM
func (PostHashtag) TableName() string {
	return "post_hashtags"
}

// PostMention is one literal @username occurrence in a post's content.
type PostMention struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	PostID   uint   `gorm:"not null;index" json:"-"`
	Username string `gorm:"size:280;not null" json:"username"`
	Position int    `gorm:"not null" json:"-"`
}

// TableName specifies the table name for GORM
func (PostMention) TableName() string {
	return "post_mentions"
}

// PostLike represents a user's like on a post.
// The combination of UserID and PostID must be unique; rows are hard-deleted
// on unlike.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_like" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_like" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (PostLike) TableName() string {
	return "post_likes"
}
