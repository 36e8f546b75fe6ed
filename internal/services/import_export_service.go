package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/errors"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/models"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories"
)

// ImportExportService translates between the store's native records and the
// two exchange formats: the flat tabular question sheet (CSV or Excel, header
// question_id,content,choice_A,choice_B,choice_C,choice_D,correct_answer) and
// whole-entity JSON documents. These are boundary utilities, not core logic.
type ImportExportService interface {
	// Import operations
	ImportQuestionsFromFile(ctx context.Context, reader io.Reader, filename, examID string) (*ImportResult, error)
	ImportQuestionsFromCSV(ctx context.Context, reader io.Reader, examID string) (*ImportResult, error)
	ImportQuestionsFromExcel(ctx context.Context, reader io.Reader, examID string) (*ImportResult, error)
	ImportExamFromJSON(ctx context.Context, reader io.Reader) (*models.Exam, error)

	// Export operations
	ExportResultsToCSV(ctx context.Context, examID string) ([]byte, error)
	ExportResultsToExcel(ctx context.Context, examID string) ([]byte, error)
	ExportExamToJSON(ctx context.Context, examID string) ([]byte, error)
}

type importExportService struct {
	repo   repositories.Repository
	logger *slog.Logger
	locks  *keyMutex
}

// NewImportExportService creates an import/export service. locks must be the
// keyMutex shared with ExamService: imports run the same load-mutate-save
// cycle on exam records and serialize on the same per-exam scope.
func NewImportExportService(repo repositories.Repository, logger *slog.Logger, locks *keyMutex) ImportExportService {
	if locks == nil {
		locks = newKeyMutex()
	}
	return &importExportService{
		repo:   repo,
		logger: logger,
		locks:  locks,
	}
}

// ===== IMPORT OPERATIONS =====

// questionColumns is the required tabular header, in canonical order.
var questionColumns = []string{
	"question_id", "content",
	"choice_A", "choice_B", "choice_C", "choice_D",
	"correct_answer",
}

type ImportResult struct {
	TotalRows    int                         `json:"total_rows"`
	SuccessCount int                         `json:"success_count"`
	ErrorCount   int                         `json:"error_count"`
	Errors       []apperrors.ValidationError `json:"errors,omitempty"`
	QuestionIDs  []string                    `json:"question_ids"`
}

func (s *importExportService) ImportQuestionsFromFile(ctx context.Context, reader io.Reader, filename, examID string) (*ImportResult, error) {
	s.logger.Info("Starting question import", "filename", filename, "exam_id", examID)

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return s.ImportQuestionsFromCSV(ctx, reader, examID)
	case ".xlsx":
		return s.ImportQuestionsFromExcel(ctx, reader, examID)
	default:
		return nil, NewValidationError("file", "Định dạng tệp không được hỗ trợ: "+ext, ext)
	}
}

func (s *importExportService) ImportQuestionsFromCSV(ctx context.Context, reader io.Reader, examID string) (*ImportResult, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return s.importQuestionRows(ctx, records, examID)
}

func (s *importExportService) ImportQuestionsFromExcel(ctx context.Context, reader io.Reader, examID string) (*ImportResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, NewValidationError("file", "Tệp Excel không có trang tính nào", nil)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	return s.importQuestionRows(ctx, rows, examID)
}

// importQuestionRows parses the tabular rows and appends every valid question
// to the target exam under the exam service's duplicate and validity rules.
// Row-level failures are collected, not fatal.
func (s *importExportService) importQuestionRows(ctx context.Context, rows [][]string, examID string) (*ImportResult, error) {
	if len(rows) < 2 {
		return nil, NewValidationError("file", "Tệp phải có dòng tiêu đề và ít nhất một dòng dữ liệu", len(rows))
	}

	headerMap := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		headerMap[strings.TrimSpace(header)] = i
	}
	for _, col := range questionColumns {
		if _, exists := headerMap[col]; !exists {
			return nil, NewValidationError("headers", "Thiếu cột bắt buộc: "+col, col)
		}
	}

	// Same load-mutate-save cycle as ExamService.AddQuestion, under the same
	// per-exam lock: an import racing another exam mutation must not lose
	// either write.
	unlock := s.locks.Lock(examID)
	defer unlock()

	exam, err := s.repo.Exam().GetByID(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrExamNotFound, examID)
		}
		return nil, err
	}

	result := &ImportResult{TotalRows: len(rows) - 1}

	cell := func(row []string, col string) string {
		idx := headerMap[col]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	for rowIndex, row := range rows[1:] {
		question := models.Question{
			QuestionID: cell(row, "question_id"),
			Content:    cell(row, "content"),
			Choices: models.Choices{
				A: cell(row, "choice_A"),
				B: cell(row, "choice_B"),
				C: cell(row, "choice_C"),
				D: cell(row, "choice_D"),
			},
			CorrectAnswer: models.ChoiceLabel(cell(row, "correct_answer")),
		}

		if err := exam.AddQuestion(question); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, apperrors.ValidationError{
				Field:   fmt.Sprintf("row %d", rowIndex+2),
				Message: err.Error(),
				Value:   question.QuestionID,
			})
			continue
		}
		result.SuccessCount++
		result.QuestionIDs = append(result.QuestionIDs, question.QuestionID)
	}

	if result.SuccessCount > 0 {
		if err := s.repo.Exam().Save(ctx, exam); err != nil {
			s.logger.Error("Failed to save exam after import", "exam_id", examID, "error", err)
			return nil, ErrExamSaveFailed
		}
	}

	s.logger.Info("Question import finished",
		"exam_id", examID,
		"total_rows", result.TotalRows,
		"imported", result.SuccessCount,
		"errors", result.ErrorCount)
	return result, nil
}

func (s *importExportService) ImportExamFromJSON(ctx context.Context, reader io.Reader) (*models.Exam, error) {
	var exam models.Exam
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&exam); err != nil {
		return nil, NewValidationError("file", "Không thể đọc tệp JSON: "+err.Error(), nil)
	}
	if err := exam.Validate(); err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(exam.ExamID)
	defer unlock()
	if err := s.repo.Exam().Save(ctx, &exam); err != nil {
		s.logger.Error("Failed to save imported exam", "exam_id", exam.ExamID, "error", err)
		return nil, ErrExamSaveFailed
	}
	s.logger.Info("Exam imported", "exam_id", exam.ExamID, "questions", exam.QuestionCount())
	return &exam, nil
}

// ===== EXPORT OPERATIONS =====

// resultExportHeader matches the columns of the legacy result sheet.
var resultExportHeader = []string{
	"Mã HS", "Điểm", "Số câu đúng", "Số câu sai", "Tổng câu", "Thời gian nộp",
}

func (s *importExportService) resultRows(ctx context.Context, examID string) ([][]string, error) {
	if _, err := s.repo.Exam().GetByID(ctx, examID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrExamNotFound, examID)
		}
		return nil, err
	}

	results, err := s.repo.Result().List(ctx, repositories.ResultFilters{ExamID: &examID})
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.StudentID,
			fmt.Sprintf("%.2f", r.Score),
			fmt.Sprintf("%d", r.CorrectAnswers),
			fmt.Sprintf("%d", r.WrongAnswers),
			fmt.Sprintf("%d", r.TotalQuestions),
			r.GradedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return rows, nil
}

func (s *importExportService) ExportResultsToCSV(ctx context.Context, examID string) ([]byte, error) {
	rows, err := s.resultRows(ctx, examID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(resultExportHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV rows: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *importExportService) ExportResultsToExcel(ctx context.Context, examID string) ([]byte, error) {
	rows, err := s.resultRows(ctx, examID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(resultExportHeader))
	for i, col := range resultExportHeader {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write Excel header: %w", err)
	}
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return nil, fmt.Errorf("failed to write Excel row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *importExportService) ExportExamToJSON(ctx context.Context, examID string) ([]byte, error) {
	exam, err := s.repo.Exam().GetByID(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrExamNotFound, examID)
		}
		return nil, err
	}
	data, err := json.MarshalIndent(exam, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode exam: %w", err)
	}
	return data, nil
}
