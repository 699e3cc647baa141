package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduvillage-api/internal/dto"
	"github.com/noah-isme/eduvillage-api/internal/middleware"
	"github.com/noah-isme/eduvillage-api/internal/models"
	"github.com/noah-isme/eduvillage-api/internal/service"
	appErrors "github.com/noah-isme/eduvillage-api/pkg/errors"
	"github.com/noah-isme/eduvillage-api/pkg/response"
)

type leaderboardService interface {
	GetLeaderboard(ctx context.Context, courseID models.ID) ([]models.LeaderboardEntry, bool, error)
	ExportLeaderboard(ctx context.Context, courseID models.ID, format string) (*service.ExportFile, error)
}

// LeaderboardHandler serves course rankings.
type LeaderboardHandler struct {
	service leaderboardService
}

// NewLeaderboardHandler constructs a LeaderboardHandler.
func NewLeaderboardHandler(svc leaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: svc}
}

// Get godoc
// @Summary Course leaderboard
// @Description Students ranked by marks, highest first
// @Tags Leaderboard
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /leaderboard/{courseId} [get]
func (h *LeaderboardHandler) Get(c *gin.Context) {
	courseID, ok := idParam(c, "courseId")
	if !ok {
		return
	}
	entries, hit, err := h.service.GetLeaderboard(c.Request.Context(), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.OK(c, response.Payload{"leaderboard": entries})
}

// Export godoc
// @Summary Download course leaderboard
// @Tags Leaderboard
// @Produce text/csv
// @Produce application/pdf
// @Param courseId path int true "Course ID"
// @Param format query string false "csv or pdf" Enums(csv, pdf)
// @Success 200 {file} file
// @Router /leaderboard/{courseId}/export [get]
func (h *LeaderboardHandler) Export(c *gin.Context) {
	courseID, ok := idParam(c, "courseId")
	if !ok {
		return
	}
	var query dto.ExportLeaderboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export query"))
		return
	}
	file, err := h.service.ExportLeaderboard(c.Request.Context(), courseID, query.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
