package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursemarket-backend/internal/http/response"
	"github.com/yungbote/coursemarket-backend/internal/platform/logger"
	"github.com/yungbote/coursemarket-backend/internal/services"
)

type RecommendationHandler struct {
	log *logger.Logger
	svc services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, svc services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{log: log.With("handler", "RecommendationHandler"), svc: svc}
}

// Limit is a pointer so an explicit limit=0 is validated instead of being
// read as absent.
type limitQuery struct {
	Limit *int `form:"limit" binding:"omitempty,min=1,max=50"`
}

// bindLimit returns 0 when the query omits limit, which selects the default
// for the endpoint.
func (h *RecommendationHandler) bindLimit(c *gin.Context) (int, bool) {
	var q limitQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.log.Debug("invalid limit", "path", c.FullPath(), "limit", c.Query("limit"))
		response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
		return 0, false
	}
	if q.Limit == nil {
		return 0, true
	}
	return *q.Limit, true
}

// GET /api/recommendations/courses
func (h *RecommendationHandler) Courses(c *gin.Context) {
	limit, ok := h.bindLimit(c)
	if !ok {
		return
	}
	out, err := h.svc.RecommendCourses(c.Request.Context(), limit)
	if err != nil {
		response.RespondAPIError(c, err, "recommendation_failed")
		return
	}
	response.RespondOK(c, gin.H{"recommendations": out})
}

// GET /api/recommendations/instructors
func (h *RecommendationHandler) Instructors(c *gin.Context) {
	limit, ok := h.bindLimit(c)
	if !ok {
		return
	}
	out, err := h.svc.RecommendInstructors(c.Request.Context(), limit)
	if err != nil {
		response.RespondAPIError(c, err, "recommendation_failed")
		return
	}
	response.RespondOK(c, gin.H{"recommendations": out})
}

// GET /api/recommendations/students
func (h *RecommendationHandler) Students(c *gin.Context) {
	limit, ok := h.bindLimit(c)
	if !ok {
		return
	}
	out, err := h.svc.RecommendLearners(c.Request.Context(), limit)
	if err != nil {
		response.RespondAPIError(c, err, "recommendation_failed")
		return
	}
	response.RespondOK(c, gin.H{"recommendations": out})
}

// GET /api/courses/:id/similar
func (h *RecommendationHandler) SimilarCourses(c *gin.Context) {
	limit, ok := h.bindLimit(c)
	if !ok {
		return
	}
	courseID := strings.TrimSpace(c.Param("id"))
	out, err := h.svc.SimilarCourses(c.Request.Context(), courseID, limit)
	if err != nil {
		response.RespondAPIError(c, err, "recommendation_failed")
		return
	}
	response.RespondOK(c, gin.H{"courses": out})
}

// GET /api/matching
func (h *RecommendationHandler) Matches(c *gin.Context) {
	limit, ok := h.bindLimit(c)
	if !ok {
		return
	}
	out, err := h.svc.MatchPeers(c.Request.Context(), limit)
	if err != nil {
		response.RespondAPIError(c, err, "matching_failed")
		return
	}
	response.RespondOK(c, gin.H{"matches": out})
}
