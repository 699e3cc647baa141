package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/eduvillage-api/internal/models"
	appErrors "github.com/noah-isme/eduvillage-api/pkg/errors"
	"github.com/noah-isme/eduvillage-api/pkg/export"
)

type resultRepository interface {
	Leaderboard(ctx context.Context, courseID models.ID) ([]models.LeaderboardEntry, error)
}

// ExportFile is a rendered leaderboard ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// LeaderboardService ranks the students of a course by marks.
type LeaderboardService struct {
	results resultRepository
	cache   *CacheService
	ttl     time.Duration
	logger  *zap.Logger
}

// NewLeaderboardService constructs a LeaderboardService.
func NewLeaderboardService(results resultRepository, cache *CacheService, ttl time.Duration, logger *zap.Logger) *LeaderboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaderboardService{results: results, cache: cache, ttl: ttl, logger: logger}
}

// GetLeaderboard returns the ranked entries of a course; the bool reports a cache hit.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, courseID models.ID) ([]models.LeaderboardEntry, bool, error) {
	entries, hit, err := cached(ctx, s.cache, leaderboardCacheKey(courseID), s.ttl, func(ctx context.Context) ([]models.LeaderboardEntry, error) {
		return s.results.Leaderboard(ctx, courseID)
	})
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to load leaderboard")
	}
	return entries, hit, nil
}

// ExportLeaderboard renders the leaderboard as csv or pdf.
func (s *LeaderboardService) ExportLeaderboard(ctx context.Context, courseID models.ID, format string) (*ExportFile, error) {
	renderer, err := export.ForFormat(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv or pdf")
	}

	entries, _, err := s.GetLeaderboard(ctx, courseID)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Title:   fmt.Sprintf("Leaderboard course %d", courseID),
		Headers: []string{"rank", "name", "email", "marks"},
		Rows:    make([]map[string]string, 0, len(entries)),
	}
	for i, entry := range entries {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"rank":  strconv.Itoa(i + 1),
			"name":  entry.Name,
			"email": entry.Email,
			"marks": strconv.FormatFloat(entry.Marks, 'f', -1, 64),
		})
	}

	content, err := renderer.Render(dataset)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render leaderboard")
	}
	s.logger.Debug("leaderboard exported", zap.Int64("course_id", int64(courseID)), zap.String("format", renderer.Extension()), zap.Int("rows", len(entries)))

	return &ExportFile{
		Filename:    fmt.Sprintf("leaderboard-%d.%s", courseID, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Content:     content,
	}, nil
}
