package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// UserService owns profiles and the follow graph.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateProfileInput struct {
	Bio        *string `json:"bio"`
	Avatar     *string `json:"avatar"`
	CoverImage *string `json:"cover_image"`
}

// GetProfile fetches a user with post and follow counts.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile applies the provided profile fields to the caller's own
// account. Nil fields are left untouched.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	if input.Bio != nil {
		bio := strings.TrimSpace(*input.Bio)
		if len(bio) > maxBioLen {
			return nil, models.NewValidationError("Bio must be at most 500 characters")
		}
		user.Bio = bio
	}
	if input.Avatar != nil {
		user.Avatar = strings.TrimSpace(*input.Avatar)
	}
	if input.CoverImage != nil {
		user.CoverImage = strings.TrimSpace(*input.CoverImage)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// Follow creates a follow edge from follower to followee.
func (s *UserService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}

	inserted, err := s.userRepo.Follow(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if !inserted {
		return models.NewAlreadyInStateError("Already following this user")
	}
	return nil
}

// Unfollow removes a follow edge.
func (s *UserService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}

	removed, err := s.userRepo.Unfollow(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewAlreadyInStateError("Not following this user")
	}
	return nil
}

// Followers lists the users following userID, most recent first.
func (s *UserService) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.userRepo.Followers(ctx, userID, limit, offset)
}

// Following lists the users userID follows, most recent first.
func (s *UserService) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.userRepo.Following(ctx, userID, limit, offset)
}
