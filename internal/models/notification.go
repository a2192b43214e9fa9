// Package models contains data structures for the application's domain models.
package models

import "time"

// NotificationKind classifies a notification by the action that produced it.
type NotificationKind string

const (
	// NotificationKindComment is emitted when someone comments on a user's
	// post or replies to their comment.
	NotificationKindComment NotificationKind = "comment"
	// NotificationKindLike is emitted when someone likes a user's post or comment.
	NotificationKindLike NotificationKind = "like"
	// NotificationKindMention is emitted when a post mentions a user by username.
	NotificationKindMention NotificationKind = "mention"
	// NotificationKindFollow is reserved for follow events; nothing emits it yet.
	NotificationKindFollow NotificationKind = "follow"
)

// Notification is a persisted inbox entry for one recipient. Rows are created
// only by the fan-out service and are hard-deleted, never soft-deleted.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index:idx_notifications_user_created" json:"user_id"`
	SenderID  uint             `gorm:"not null" json:"sender_id"`
	Sender    User             `gorm:"foreignKey:SenderID" json:"sender"`
	Kind      NotificationKind `gorm:"type:varchar(20);not null" json:"kind"`
	PostID    *uint            `json:"post_id,omitempty"`
	CommentID *uint            `json:"comment_id,omitempty"`
	Message   string           `gorm:"not null" json:"message"`
	IsRead    bool             `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time        `gorm:"index:idx_notifications_user_created" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}
