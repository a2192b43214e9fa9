package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ripple/internal/featureflags"
	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetTrendingHashtags(t *testing.T) {
	s, m := newHandlerTestServer()
	m.postRepo.On("ScanHashtagActivity", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]repository.HashtagActivity{
			{Tag: "golang", LikeCount: 3},
			{Tag: "golang", LikeCount: 1},
			{Tag: "fiber", LikeCount: 0},
		}, nil)

	app := fiber.New()
	app.Get("/hashtags/trending", s.GetTrendingHashtags)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/hashtags/trending", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var tags []service.TrendingTag
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tags))
	require.Len(t, tags, 2)
	// golang: 2 occurrences + 4 likes = 6; fiber: 1 + 0 = 1.
	assert.Equal(t, "golang", tags[0].Tag)
	assert.Equal(t, 6, tags[0].TotalActivity)
	assert.Equal(t, "fiber", tags[1].Tag)
}

func TestGetTrendingHashtags_DisabledByFlag(t *testing.T) {
	s, m := newHandlerTestServer()
	s.featureFlags = featureflags.NewManager(service.TrendingOffFlag + "=on")
	s.trendingService = service.NewTrendingService(m.postRepo, s.featureFlags)

	app := fiber.New()
	app.Get("/hashtags/trending", s.GetTrendingHashtags)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/hashtags/trending", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetPostsByHashtag(t *testing.T) {
	s, m := newHandlerTestServer()
	m.postRepo.On("GetByHashtag", mock.Anything, "golang", defaultPageSize, 0, uint(0)).
		Return([]*models.Post{{ID: 4, Content: "Learning #GoLang"}}, nil)

	app := fiber.New()
	app.Get("/hashtags/:tag", s.GetPostsByHashtag)

	// Mixed case in the URL still hits the lowercase tag.
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/hashtags/GoLang", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
	require.Len(t, posts, 1)
	assert.Equal(t, uint(4), posts[0].ID)
}

func TestGetPostsByHashtag_WindowPassedToScan(t *testing.T) {
	s, m := newHandlerTestServer()

	var since time.Time
	m.postRepo.On("ScanHashtagActivity", mock.Anything, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			since = args.Get(1).(time.Time)
		}).
		Return([]repository.HashtagActivity{}, nil)

	app := fiber.New()
	app.Get("/hashtags/trending", s.GetTrendingHashtags)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/hashtags/trending", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), since, time.Minute)
}
