package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListNotifications(t *testing.T) {
	s, m := newHandlerTestServer()
	m.notificationRepo.On("ListByUserID", mock.Anything, uint(1), 50).
		Return([]*models.Notification{
			{ID: 2, UserID: 1, Kind: models.NotificationKindLike, Message: "bob liked your post"},
			{ID: 1, UserID: 1, Kind: models.NotificationKindComment, Message: "bob commented on your post"},
		}, nil)

	app := fiber.New()
	app.Get("/notifications", withUser(1), s.ListNotifications)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/notifications", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var list []models.Notification
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, uint(2), list[0].ID)
}

func TestMarkNotificationRead(t *testing.T) {
	t.Run("Owned", func(t *testing.T) {
		s, m := newHandlerTestServer()
		m.notificationRepo.On("MarkRead", mock.Anything, uint(5), uint(1)).Return(true, nil)

		app := fiber.New()
		app.Put("/notifications/:id/read", withUser(1), s.MarkNotificationRead)

		resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/notifications/5/read", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("Foreign reads as not found", func(t *testing.T) {
		s, m := newHandlerTestServer()
		m.notificationRepo.On("MarkRead", mock.Anything, uint(5), uint(1)).Return(false, nil)

		app := fiber.New()
		app.Put("/notifications/:id/read", withUser(1), s.MarkNotificationRead)

		resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/notifications/5/read", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestMarkAllNotificationsRead(t *testing.T) {
	s, m := newHandlerTestServer()
	m.notificationRepo.On("MarkAllRead", mock.Anything, uint(1)).Return(nil)

	app := fiber.New()
	app.Put("/notifications/read-all", withUser(1), s.MarkAllNotificationsRead)

	resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/notifications/read-all", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	m.notificationRepo.AssertExpectations(t)
}

func TestDeleteNotification_Foreign(t *testing.T) {
	s, m := newHandlerTestServer()
	m.notificationRepo.On("Delete", mock.Anything, uint(5), uint(1)).Return(false, nil)

	app := fiber.New()
	app.Delete("/notifications/:id", withUser(1), s.DeleteNotification)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/notifications/5", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
