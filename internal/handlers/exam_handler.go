package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/services"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/utils"
)

// ExamHandler exposes exam management endpoints.
type ExamHandler struct {
	BaseHandler
	exams services.ExamService
}

// NewExamHandler creates an exam handler.
func NewExamHandler(exams services.ExamService, logger utils.Logger) *ExamHandler {
	return &ExamHandler{
		BaseHandler: NewBaseHandler(logger),
		exams:       exams,
	}
}

// CreateExam handles POST /api/v1/exams.
func (h *ExamHandler) CreateExam(c *gin.Context) {
	var req services.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Dữ liệu không hợp lệ",
			Details: err.Error(),
		})
		return
	}

	exam, err := h.exams.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Tạo đề thi thành công",
		Data:    exam,
	})
}

// AddQuestion handles POST /api/v1/exams/:id/questions.
func (h *ExamHandler) AddQuestion(c *gin.Context) {
	examID, ok := h.ParseStringIDParam(c, "id")
	if !ok {
		return
	}

	var req services.AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Dữ liệu không hợp lệ",
			Details: err.Error(),
		})
		return
	}

	questionID, err := h.exams.AddQuestion(c.Request.Context(), examID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Thêm câu hỏi thành công",
		Data:    gin.H{"question_id": questionID},
	})
}

// GetExam handles GET /api/v1/exams/:id.
func (h *ExamHandler) GetExam(c *gin.Context) {
	examID, ok := h.ParseStringIDParam(c, "id")
	if !ok {
		return
	}

	exam, err := h.exams.GetByID(c.Request.Context(), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: exam})
}

// ListExams handles GET /api/v1/exams.
func (h *ExamHandler) ListExams(c *gin.Context) {
	exams, err := h.exams.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: exams})
}

// UpdateExam handles PUT /api/v1/exams/:id.
func (h *ExamHandler) UpdateExam(c *gin.Context) {
	examID, ok := h.ParseStringIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Dữ liệu không hợp lệ",
			Details: err.Error(),
		})
		return
	}

	exam, err := h.exams.Update(c.Request.Context(), examID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Cập nhật đề thi thành công",
		Data:    exam,
	})
}

// DeleteExam handles DELETE /api/v1/exams/:id.
func (h *ExamHandler) DeleteExam(c *gin.Context) {
	examID, ok := h.ParseStringIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.exams.Delete(c.Request.Context(), examID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Xóa đề thi thành công",
	})
}
