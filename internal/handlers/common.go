package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/errors"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/services"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/utils"
)

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse is the success envelope returned by every endpoint.
type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseHandler provides logging and error translation shared by all handlers.
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a base handler with the given logger.
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// ParseStringIDParam extracts a non-empty string ID from the request path.
// It writes a 400 response and returns false when the ID is missing.
func (h *BaseHandler) ParseStringIDParam(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Thiếu tham số " + name,
		})
		return "", false
	}
	return id, true
}

// handleServiceError translates service layer errors into HTTP responses.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs apperrors.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Dữ liệu không hợp lệ",
			Details: validationErrs,
		})
		return
	}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Dữ liệu không hợp lệ",
			Details: validationErr.Message,
		})
		return
	}

	if services.IsNotFound(err) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	h.logger.Error("unhandled service error", "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "Lỗi hệ thống, vui lòng thử lại sau",
	})
}
