package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn              func(context.Context, *models.Post) error
	getByIDFn             func(context.Context, uint, uint) (*models.Post, error)
	getByUserIDFn         func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	getByHashtagFn        func(context.Context, string, int, int, uint) ([]*models.Post, error)
	timelineFn            func(context.Context, uint, int, int) ([]*models.Post, error)
	updateFn              func(context.Context, *models.Post) error
	deleteFn              func(context.Context, uint) error
	likeFn                func(context.Context, uint, uint) (bool, error)
	unlikeFn              func(context.Context, uint, uint) (bool, error)
	scanHashtagActivityFn func(context.Context, time.Time) ([]repository.HashtagActivity, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) GetByHashtag(ctx context.Context, tag string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByHashtagFn(ctx, tag, limit, offset, currentUserID)
}
func (s *postRepoStub) Timeline(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.timelineFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) (bool, error) {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) (bool, error) {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) ScanHashtagActivity(ctx context.Context, since time.Time) ([]repository.HashtagActivity, error) {
	return s.scanHashtagActivityFn(ctx, since)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		getByUserIDFn:  func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		getByHashtagFn: func(_ context.Context, _ string, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		timelineFn:     func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) { return nil, nil },
		updateFn:       func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:       func(_ context.Context, _ uint) error { return nil },
		likeFn:         func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unlikeFn:       func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		scanHashtagActivityFn: func(_ context.Context, _ time.Time) ([]repository.HashtagActivity, error) {
			return nil, nil
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn            func(context.Context, *models.Comment) error
	getByIDFn           func(context.Context, uint, uint) (*models.Comment, error)
	getThreadByPostIDFn func(context.Context, uint, uint) ([]*models.Comment, error)
	updateFn            func(context.Context, *models.Comment) error
	deleteFn            func(context.Context, uint) error
	likeFn              func(context.Context, uint, uint) (bool, error)
	unlikeFn            func(context.Context, uint, uint) (bool, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *commentRepoStub) GetThreadByPostID(ctx context.Context, postID, currentUserID uint) ([]*models.Comment, error) {
	return s.getThreadByPostIDFn(ctx, postID, currentUserID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) Like(ctx context.Context, userID, commentID uint) (bool, error) {
	return s.likeFn(ctx, userID, commentID)
}
func (s *commentRepoStub) Unlike(ctx context.Context, userID, commentID uint) (bool, error) {
	return s.unlikeFn(ctx, userID, commentID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		getThreadByPostIDFn: func(_ context.Context, _, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:            func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:            func(_ context.Context, _ uint) error { return nil },
		likeFn:              func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unlikeFn:            func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByIDCachedFn func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	followFn        func(context.Context, uint, uint) (bool, error)
	unfollowFn      func(context.Context, uint, uint) (bool, error)
	followersFn     func(context.Context, uint, int, int) ([]models.User, error)
	followingFn     func(context.Context, uint, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDCached(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDCachedFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Follow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.followFn(ctx, followerID, followeeID)
}
func (s *userRepoStub) Unfollow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.unfollowFn(ctx, followerID, followeeID)
}
func (s *userRepoStub) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.followersFn(ctx, userID, limit, offset)
}
func (s *userRepoStub) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.followingFn(ctx, userID, limit, offset)
}

func noopUserRepo() *userRepoStub {
	lookup := func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "user"}, nil
	}
	return &userRepoStub{
		getByIDFn:       lookup,
		getByIDCachedFn: lookup,
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		followFn:        func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unfollowFn:      func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		followersFn:     func(_ context.Context, _ uint, _, _ int) ([]models.User, error) { return nil, nil },
		followingFn:     func(_ context.Context, _ uint, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// notificationRepoStub is a stub for repository.NotificationRepository.
// Created notifications accumulate in created for assertions.
type notificationRepoStub struct {
	created    []*models.Notification
	createErr  error
	listFn     func(context.Context, uint, int) ([]*models.Notification, error)
	markReadFn func(context.Context, uint, uint) (bool, error)
	markAllFn  func(context.Context, uint) error
	deleteFn   func(context.Context, uint, uint) (bool, error)
}

func (s *notificationRepoStub) Create(_ context.Context, n *models.Notification) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, n)
	return nil
}
func (s *notificationRepoStub) ListByUserID(ctx context.Context, userID uint, limit int) ([]*models.Notification, error) {
	return s.listFn(ctx, userID, limit)
}
func (s *notificationRepoStub) MarkRead(ctx context.Context, id, userID uint) (bool, error) {
	return s.markReadFn(ctx, id, userID)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, userID uint) error {
	return s.markAllFn(ctx, userID)
}
func (s *notificationRepoStub) Delete(ctx context.Context, id, userID uint) (bool, error) {
	return s.deleteFn(ctx, id, userID)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		listFn:     func(_ context.Context, _ uint, _ int) ([]*models.Notification, error) { return nil, nil },
		markReadFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		markAllFn:  func(_ context.Context, _ uint) error { return nil },
		deleteFn:   func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
	}
}

// publisherStub records published payloads per user channel.
type publisherStub struct {
	published  []publishedMessage
	publishErr error
}

type publishedMessage struct {
	userID  uint
	payload string
}

func (s *publisherStub) PublishUser(_ context.Context, userID uint, payload string) error {
	if s.publishErr != nil {
		return s.publishErr
	}
	s.published = append(s.published, publishedMessage{userID: userID, payload: payload})
	return nil
}

// assertAppError asserts that err is an AppError with the given code.
func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "VALIDATION_ERROR")
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "UNAUTHORIZED")
}

func assertAlreadyInStateError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "ALREADY_IN_STATE")
}
