package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/services"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/utils"
)

// ImportExportHandler exposes question import and result export endpoints.
type ImportExportHandler struct {
	BaseHandler
	importExport services.ImportExportService
}

// NewImportExportHandler creates an import/export handler.
func NewImportExportHandler(importExport services.ImportExportService, logger utils.Logger) *ImportExportHandler {
	return &ImportExportHandler{
		BaseHandler:  NewBaseHandler(logger),
		importExport: importExport,
	}
}

// ImportQuestions handles POST /api/v1/exams/:id/questions/import. The
// request carries a multipart "file" field holding a CSV or Excel file.
func (h *ImportExportHandler) ImportQuestions(c *gin.Context) {
	examID, ok := h.ParseStringIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Thiếu tệp tải lên",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Không thể đọc tệp tải lên",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	result, err := h.importExport.ImportQuestionsFromFile(c.Request.Context(), file, fileHeader.Filename, examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: fmt.Sprintf("Nhập %d/%d câu hỏi thành công", result.SuccessCount, result.TotalRows),
		Data:    result,
	})
}

// ImportExam handles POST /api/v1/exams/import with a JSON exam document in
// the request body.
func (h *ImportExportHandler) ImportExam(c *gin.Context) {
	exam, err := h.importExport.ImportExamFromJSON(c.Request.Context(), c.Request.Body)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Nhập đề thi thành công",
		Data:    exam,
	})
}

// ExportExam handles GET /api/v1/exams/:id/export.
func (h *ImportExportHandler) ExportExam(c *gin.Context) {
	examID, ok := h.ParseStringIDParam(c, "id")
	if !ok {
		return
	}

	data, err := h.importExport.ExportExamToJSON(c.Request.Context(), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", examID))
	c.Data(http.StatusOK, "application/json", data)
}

// ExportResults handles GET /api/v1/exams/:id/results/export. The "format"
// query parameter selects csv (default) or xlsx output.
func (h *ImportExportHandler) ExportResults(c *gin.Context) {
	examID, ok := h.ParseStringIDParam(c, "id")
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "csv")
	switch format {
	case "csv":
		data, err := h.importExport.ExportResultsToCSV(c.Request.Context(), examID)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=ket_qua_%s.csv", examID))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	case "xlsx":
		data, err := h.importExport.ExportResultsToExcel(c.Request.Context(), examID)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=ket_qua_%s.xlsx", examID))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Định dạng xuất không được hỗ trợ: " + format,
		})
	}
}
