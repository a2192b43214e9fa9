package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"ripple/internal/content"
	"ripple/internal/models"
	"ripple/internal/repository"
)

// PostService owns post lifecycle and like toggling.
type PostService struct {
	postRepo repository.PostRepository
	fanout   *Fanout
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository, fanout *Fanout) *PostService {
	return &PostService{
		postRepo: postRepo,
		fanout:   fanout,
	}
}

type CreatePostInput struct {
	Content string `json:"content"`
}

type UpdatePostInput struct {
	Content string `json:"content"`
}

// validateContent trims and bounds-checks post or comment content.
// The limit counts Unicode code points, not bytes.
func validateContent(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(trimmed) > models.MaxContentRunes {
		return "", models.NewValidationError("Content must be at most 280 characters")
	}
	return trimmed, nil
}

// deriveTokens rewrites the post's hashtag and mention rows from its content.
// Row IDs are zeroed so the repository inserts fresh rows on update.
func deriveTokens(post *models.Post) content.Tokens {
	tokens := content.Parse(post.Content)

	post.Hashtags = make([]models.PostHashtag, 0, len(tokens.Hashtags))
	for i, tag := range tokens.Hashtags {
		post.Hashtags = append(post.Hashtags, models.PostHashtag{Tag: tag, Position: i})
	}
	post.Mentions = make([]models.PostMention, 0, len(tokens.Mentions))
	for i, username := range tokens.Mentions {
		post.Mentions = append(post.Mentions, models.PostMention{Username: username, Position: i})
	}
	return tokens
}

// CreatePost validates, persists, and fans out mentions for a new post.
func (s *PostService) CreatePost(ctx context.Context, userID uint, input CreatePostInput) (*models.Post, error) {
	trimmed, err := validateContent(input.Content)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Content: trimmed,
		UserID:  userID,
	}
	tokens := deriveTokens(post)

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.fanout.PostMentions(ctx, userID, post, tokens.Mentions)

	return s.postRepo.GetByID(ctx, post.ID, userID)
}

// GetPost fetches one post with computed counts relative to currentUserID.
func (s *PostService) GetPost(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

// Timeline returns the user's own posts plus those of everyone they follow,
// newest first.
func (s *PostService) Timeline(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.Timeline(ctx, userID, limit, offset)
}

// GetUserPosts returns one author's posts, newest first.
func (s *PostService) GetUserPosts(ctx context.Context, authorID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.GetByUserID(ctx, authorID, limit, offset, currentUserID)
}

// GetPostsByHashtag returns posts carrying the tag, case-insensitively.
func (s *PostService) GetPostsByHashtag(ctx context.Context, tag string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	if normalized == "" {
		return nil, models.NewValidationError("Hashtag is required")
	}
	return s.postRepo.GetByHashtag(ctx, normalized, limit, offset, currentUserID)
}

// UpdatePost replaces the post's content, re-derives its hashtag and mention
// rows, and fans out mentions again.
func (s *PostService) UpdatePost(ctx context.Context, userID, postID uint, input UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}

	trimmed, err := validateContent(input.Content)
	if err != nil {
		return nil, err
	}

	post.Content = trimmed
	tokens := deriveTokens(post)

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	s.fanout.PostMentions(ctx, userID, post, tokens.Mentions)

	return s.postRepo.GetByID(ctx, postID, userID)
}

// DeletePost soft-deletes the caller's own post.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// LikePost records a like and notifies the author. Liking an already-liked
// post is reported as an error rather than silently succeeding.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}

	inserted, err := s.postRepo.Like(ctx, userID, postID)
	if err != nil {
		return err
	}
	if !inserted {
		return models.NewAlreadyInStateError("Post already liked")
	}

	s.fanout.PostLiked(ctx, userID, post)
	return nil
}

// UnlikePost removes a like. No notification is emitted.
func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return err
	}

	removed, err := s.postRepo.Unlike(ctx, userID, postID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewAlreadyInStateError("Post not liked")
	}
	return nil
}
