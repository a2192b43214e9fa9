// Package service contains business logic for the application.
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ripple/internal/featureflags"
	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// Publisher pushes a serialized notification payload to a user's real-time
// channel. The Redis notifier implements it in production; a nil Publisher
// disables delivery without disabling persistence.
type Publisher interface {
	PublishUser(ctx context.Context, userID uint, payload string) error
}

// MentionFanoutOffFlag disables mention notifications when enabled.
const MentionFanoutOffFlag = "mention-fanout-off"

// Fanout persists notifications and pushes them to recipients. Every method
// is best-effort: the triggering action has already committed, so failures
// here are logged and swallowed, never returned to the caller.
type Fanout struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	publisher        Publisher
	flags            *featureflags.Manager
}

// NewFanout creates a Fanout. publisher and flags may be nil.
func NewFanout(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	publisher Publisher,
	flags *featureflags.Manager,
) *Fanout {
	return &Fanout{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		publisher:        publisher,
		flags:            flags,
	}
}

// CommentCreated notifies the post author about a new comment; a reply
// additionally notifies the parent comment's author. Nobody is notified
// about their own comment, and the post author is never notified twice for
// one reply.
func (f *Fanout) CommentCreated(ctx context.Context, actorID uint, post *models.Post, parent *models.Comment, comment *models.Comment) {
	actor, ok := f.actor(ctx, actorID)
	if !ok {
		return
	}

	if post.UserID != actorID {
		f.deliver(ctx, &models.Notification{
			UserID:    post.UserID,
			SenderID:  actorID,
			Kind:      models.NotificationKindComment,
			PostID:    &post.ID,
			CommentID: &comment.ID,
			Message:   fmt.Sprintf("%s commented on your post", actor.Username),
		})
	}

	if parent == nil || parent.UserID == actorID || parent.UserID == post.UserID {
		return
	}
	f.deliver(ctx, &models.Notification{
		UserID:    parent.UserID,
		SenderID:  actorID,
		Kind:      models.NotificationKindComment,
		PostID:    &post.ID,
		CommentID: &comment.ID,
		Message:   fmt.Sprintf("%s replied to your comment", actor.Username),
	})
}

// PostLiked notifies the post author about a fresh like.
func (f *Fanout) PostLiked(ctx context.Context, actorID uint, post *models.Post) {
	if post.UserID == actorID {
		return
	}
	actor, ok := f.actor(ctx, actorID)
	if !ok {
		return
	}
	f.deliver(ctx, &models.Notification{
		UserID:   post.UserID,
		SenderID: actorID,
		Kind:     models.NotificationKindLike,
		PostID:   &post.ID,
		Message:  fmt.Sprintf("%s liked your post", actor.Username),
	})
}

// CommentLiked notifies the comment author about a fresh like.
func (f *Fanout) CommentLiked(ctx context.Context, actorID uint, comment *models.Comment) {
	if comment.UserID == actorID {
		return
	}
	actor, ok := f.actor(ctx, actorID)
	if !ok {
		return
	}
	f.deliver(ctx, &models.Notification{
		UserID:    comment.UserID,
		SenderID:  actorID,
		Kind:      models.NotificationKindLike,
		PostID:    &comment.PostID,
		CommentID: &comment.ID,
		Message:   fmt.Sprintf("%s liked your comment", actor.Username),
	})
}

// PostMentions notifies every user mentioned in a post. Unresolvable
// usernames are skipped without aborting the rest; repeated mentions of the
// same user produce repeated notifications, and a resolvable mention always
// notifies, the author's own username included.
func (f *Fanout) PostMentions(ctx context.Context, actorID uint, post *models.Post, usernames []string) {
	if len(usernames) == 0 {
		return
	}
	if f.flags.Enabled(MentionFanoutOffFlag, actorID) {
		return
	}
	actor, ok := f.actor(ctx, actorID)
	if !ok {
		return
	}

	for _, username := range usernames {
		mentioned, err := f.userRepo.GetByUsername(ctx, username)
		if err != nil {
			middleware.Logger.Warn("mention lookup failed",
				"username", username, "error", err)
			continue
		}
		if mentioned == nil {
			continue
		}
		f.deliver(ctx, &models.Notification{
			UserID:   mentioned.ID,
			SenderID: actorID,
			Kind:     models.NotificationKindMention,
			PostID:   &post.ID,
			Message:  fmt.Sprintf("%s mentioned you in a post", actor.Username),
		})
	}
}

func (f *Fanout) actor(ctx context.Context, actorID uint) (*models.User, bool) {
	actor, err := f.userRepo.GetByIDCached(ctx, actorID)
	if err != nil {
		middleware.Logger.Warn("fanout actor lookup failed",
			"actor_id", actorID, "error", err)
		return nil, false
	}
	return actor, true
}

// deliver persists the notification and then publishes it. Persist comes
// first so a recipient who misses the push still sees the inbox entry.
func (f *Fanout) deliver(ctx context.Context, n *models.Notification) {
	kind := string(n.Kind)

	if err := f.notificationRepo.Create(ctx, n); err != nil {
		middleware.Logger.Error("notification persist failed",
			"kind", kind, "recipient", n.UserID, "error", err)
		observability.RecordFanout(kind, "persist_error")
		return
	}

	if f.publisher == nil {
		observability.RecordFanout(kind, "persisted")
		return
	}

	payload, err := json.Marshal(n)
	if err != nil {
		observability.RecordFanout(kind, "encode_error")
		return
	}
	if err := f.publisher.PublishUser(ctx, n.UserID, string(payload)); err != nil {
		middleware.Logger.Warn("notification publish failed",
			"kind", kind, "recipient", n.UserID, "error", err)
		observability.RecordFanout(kind, "publish_error")
		return
	}
	observability.RecordFanout(kind, "published")
}
