package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// CommentService owns the comment lifecycle and thread retrieval.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	fanout      *Fanout
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, fanout *Fanout) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		fanout:      fanout,
	}
}

type CreateCommentInput struct {
	PostID   uint   `json:"post_id"`
	ParentID *uint  `json:"parent_id"`
	Content  string `json:"content"`
}

type UpdateCommentInput struct {
	Content string `json:"content"`
}

// CreateComment validates the target post and optional parent, persists the
// comment, and fans out to the post author or the parent comment's author.
func (s *CommentService) CreateComment(ctx context.Context, userID uint, input CreateCommentInput) (*models.Comment, error) {
	trimmed, err := validateContent(input.Content)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, input.PostID, userID)
	if err != nil {
		return nil, err
	}

	var parent *models.Comment
	if input.ParentID != nil {
		parent, err = s.commentRepo.GetByID(ctx, *input.ParentID, userID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != input.PostID {
			return nil, models.NewValidationError("Parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		Content:  trimmed,
		UserID:   userID,
		PostID:   input.PostID,
		ParentID: input.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.fanout.CommentCreated(ctx, userID, post, parent, comment)

	return s.commentRepo.GetByID(ctx, comment.ID, userID)
}

// GetThread returns the post's root comments newest first, each with its
// direct replies oldest first. The post must exist and not be deleted.
func (s *CommentService) GetThread(ctx context.Context, postID, currentUserID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, currentUserID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetThreadByPostID(ctx, postID, currentUserID)
}

// UpdateComment replaces the caller's own comment content.
func (s *CommentService) UpdateComment(ctx context.Context, userID, commentID uint, input UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, models.NewUnauthorizedError("You can only update your own comments")
	}

	trimmed, err := validateContent(input.Content)
	if err != nil {
		return nil, err
	}

	comment.Content = trimmed
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, commentID, userID)
}

// DeleteComment soft-deletes the caller's own comment.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, commentID)
}

// LikeComment records a like and notifies the comment author.
func (s *CommentService) LikeComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		return err
	}

	inserted, err := s.commentRepo.Like(ctx, userID, commentID)
	if err != nil {
		return err
	}
	if !inserted {
		return models.NewAlreadyInStateError("Comment already liked")
	}

	s.fanout.CommentLiked(ctx, userID, comment)
	return nil
}

// UnlikeComment removes a like. No notification is emitted.
func (s *CommentService) UnlikeComment(ctx context.Context, userID, commentID uint) error {
	if _, err := s.commentRepo.GetByID(ctx, commentID, userID); err != nil {
		return err
	}

	removed, err := s.commentRepo.Unlike(ctx, userID, commentID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewAlreadyInStateError("Comment not liked")
	}
	return nil
}
