package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// notificationPageSize caps how many inbox entries one fetch returns.
const notificationPageSize = 50

// NotificationService owns the per-user notification inbox.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns the user's newest notifications with senders preloaded.
func (s *NotificationService) List(ctx context.Context, userID uint) ([]*models.Notification, error) {
	return s.notificationRepo.ListByUserID(ctx, userID, notificationPageSize)
}

// MarkRead marks one of the user's own notifications as read. A notification
// that does not exist or belongs to someone else reads as not found.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) error {
	matched, err := s.notificationRepo.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !matched {
		return models.NewNotFoundError("Notification", id)
	}
	return nil
}

// MarkAllRead marks every unread notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Delete hard-deletes one of the user's own notifications.
func (s *NotificationService) Delete(ctx context.Context, userID, id uint) error {
	deleted, err := s.notificationRepo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("Notification", id)
	}
	return nil
}
