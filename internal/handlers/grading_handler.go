package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/services"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/utils"
)

// GradingHandler exposes grading and result endpoints.
type GradingHandler struct {
	BaseHandler
	grading services.GradingService
}

// NewGradingHandler creates a grading handler.
func NewGradingHandler(grading services.GradingService, logger utils.Logger) *GradingHandler {
	return &GradingHandler{
		BaseHandler: NewBaseHandler(logger),
		grading:     grading,
	}
}

// GradeSubmission handles POST /api/v1/submissions/:id/grade. Regrading the
// same submission produces a new result record.
func (h *GradingHandler) GradeSubmission(c *gin.Context) {
	submissionID, ok := h.ParseStringIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.grading.GradeSubmission(c.Request.Context(), submissionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Chấm bài thành công",
		Data:    result,
	})
}

// GetResult handles GET /api/v1/results/:id.
func (h *GradingHandler) GetResult(c *gin.Context) {
	resultID, ok := h.ParseStringIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.grading.GetResult(c.Request.Context(), resultID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: result})
}

// ListResults handles GET /api/v1/results with optional exam_id and
// student_id query filters.
func (h *GradingHandler) ListResults(c *gin.Context) {
	var filters repositories.ResultFilters
	if examID := c.Query("exam_id"); examID != "" {
		filters.ExamID = &examID
	}
	if studentID := c.Query("student_id"); studentID != "" {
		filters.StudentID = &studentID
	}

	results, err := h.grading.ListResults(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: results})
}
