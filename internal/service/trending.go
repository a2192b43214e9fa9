package service

import (
	"context"
	"sort"
	"time"

	"ripple/internal/featureflags"
	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

const (
	// TrendingOffFlag hides the trending feed entirely when enabled.
	TrendingOffFlag = "trending-off"

	trendingWindow = 24 * time.Hour
	trendingLimit  = 20
)

// TrendingTag is one entry of the trending feed. TotalActivity is the rank
// key: occurrence count plus accumulated post likes.
type TrendingTag struct {
	Tag           string `json:"tag"`
	Count         int    `json:"count"`
	Engagement    int    `json:"engagement"`
	TotalActivity int    `json:"total_activity"`
}

// TrendingService computes the trending hashtag feed over a sliding window.
// Results are recomputed on every call; nothing is cached.
type TrendingService struct {
	postRepo repository.PostRepository
	flags    *featureflags.Manager
	now      func() time.Time
}

// NewTrendingService creates a new TrendingService. flags may be nil.
func NewTrendingService(postRepo repository.PostRepository, flags *featureflags.Manager) *TrendingService {
	return &TrendingService{
		postRepo: postRepo,
		flags:    flags,
		now:      time.Now,
	}
}

// Trending aggregates hashtag activity over the last 24 hours and returns
// the top entries by total activity, ties broken by tag.
func (s *TrendingService) Trending(ctx context.Context) ([]TrendingTag, error) {
	if s.flags.Enabled(TrendingOffFlag, 0) {
		return nil, &models.AppError{Code: "NOT_FOUND", Message: "Trending feed is not available"}
	}

	start := s.now()
	defer func() {
		observability.TrendingQueryDuration.Observe(time.Since(start).Seconds())
	}()

	rows, err := s.postRepo.ScanHashtagActivity(ctx, start.Add(-trendingWindow))
	if err != nil {
		return nil, err
	}

	byTag := make(map[string]*TrendingTag)
	for _, row := range rows {
		entry, ok := byTag[row.Tag]
		if !ok {
			entry = &TrendingTag{Tag: row.Tag}
			byTag[row.Tag] = entry
		}
		entry.Count++
		entry.Engagement += row.LikeCount
	}

	tags := make([]TrendingTag, 0, len(byTag))
	for _, entry := range byTag {
		entry.TotalActivity = entry.Count + entry.Engagement
		tags = append(tags, *entry)
	}

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].TotalActivity != tags[j].TotalActivity {
			return tags[i].TotalActivity > tags[j].TotalActivity
		}
		return tags[i].Tag < tags[j].Tag
	})

	if len(tags) > trendingLimit {
		tags = tags[:trendingLimit]
	}
	return tags, nil
}
