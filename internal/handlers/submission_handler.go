package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/services"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/utils"
)

// SubmissionHandler exposes submission endpoints.
type SubmissionHandler struct {
	BaseHandler
	submissions services.SubmissionService
	grading     services.GradingService
}

// NewSubmissionHandler creates a submission handler. The grading service is
// used by the submit-and-grade endpoint so a student gets their score in one
// round trip.
func NewSubmissionHandler(
	submissions services.SubmissionService,
	grading services.GradingService,
	logger utils.Logger,
) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler: NewBaseHandler(logger),
		submissions: submissions,
		grading:     grading,
	}
}

// Submit handles POST /api/v1/submissions. When the "grade" query parameter
// is "true" the submission is graded immediately and the result is included
// in the response.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req services.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Dữ liệu không hợp lệ",
			Details: err.Error(),
		})
		return
	}

	submission, err := h.submissions.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	payload := gin.H{"submission": submission}
	if c.Query("grade") == "true" {
		result, err := h.grading.GradeSubmission(c.Request.Context(), submission.SubmissionID)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		payload["result"] = result
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Nộp bài thành công",
		Data:    payload,
	})
}

// GetSubmission handles GET /api/v1/submissions/:id.
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	submissionID, ok := h.ParseStringIDParam(c, "id")
	if !ok {
		return
	}

	submission, err := h.submissions.GetByID(c.Request.Context(), submissionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: submission})
}

// ListSubmissions handles GET /api/v1/submissions with optional exam_id and
// student_id query filters.
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	var filters repositories.SubmissionFilters
	if examID := c.Query("exam_id"); examID != "" {
		filters.ExamID = &examID
	}
	if studentID := c.Query("student_id"); studentID != "" {
		filters.StudentID = &studentID
	}

	submissions, err := h.submissions.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: submissions})
}
