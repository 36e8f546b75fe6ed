// Command chamthi is the offline companion to the HTTP server: it works
// directly against the record store so a teacher can create exams, import
// questions, grade answer sheets, and export results without running the API.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/events"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/models"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories/filestore"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/services"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/utils"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/validator"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chamthi",
		Short:         "Công cụ chấm thi trắc nghiệm",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("data", "data", "Thư mục lưu dữ liệu")
	root.AddCommand(taoDeCmd(), chamCmd(), nhapCauCmd(), xuatKetQuaCmd())
	return root
}

// newServices wires the service layer over the file store named by --data.
// Events stay on the in-process bus; Vietnamese output goes to stdout while
// structured logs go to stderr.
func newServices(cmd *cobra.Command) (services.ServiceManager, error) {
	dataDir, _ := cmd.Flags().GetString("data")

	logger := utils.NewDevelopmentLogger()
	slogLogger := utils.ToSlogLogger(logger)

	store, err := filestore.New(dataDir, slogLogger)
	if err != nil {
		return nil, fmt.Errorf("không thể khởi tạo thư mục dữ liệu %s: %w", dataDir, err)
	}

	publisher := events.NewGoChannelEventPublisher(events.PublisherConfig{
		TopicName: events.NotificationTopic,
		Logger:    slogLogger,
	})

	return services.NewServiceManager(services.Deps{
		Repo:      store,
		Logger:    slogLogger,
		Validator: validator.New(),
		Publisher: publisher,
	}), nil
}

func taoDeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taode",
		Short: "Tạo đề thi mẫu 4 câu",
		RunE:  runTaoDe,
	}
	cmd.Flags().String("title", "Đề thi mẫu", "Tiêu đề đề thi")
	cmd.Flags().String("teacher", "GV001", "Mã giáo viên")
	return cmd
}

func runTaoDe(cmd *cobra.Command, _ []string) error {
	sm, err := newServices(cmd)
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	teacher, _ := cmd.Flags().GetString("teacher")

	ctx := cmd.Context()
	exam, err := sm.Exam().Create(ctx, &services.CreateExamRequest{
		Title:     title,
		TeacherID: teacher,
	})
	if err != nil {
		return err
	}

	samples := []services.AddQuestionRequest{
		{Content: "1 + 1 = ?", Choices: models.Choices{A: "1", B: "2", C: "3", D: "4"}, CorrectAnswer: "B"},
		{Content: "2 + 2 = ?", Choices: models.Choices{A: "2", B: "3", C: "4", D: "5"}, CorrectAnswer: "C"},
		{Content: "3 + 3 = ?", Choices: models.Choices{A: "4", B: "5", C: "6", D: "7"}, CorrectAnswer: "C"},
		{Content: "4 + 4 = ?", Choices: models.Choices{A: "6", B: "7", C: "8", D: "9"}, CorrectAnswer: "C"},
	}
	for i := range samples {
		if _, err := sm.Exam().AddQuestion(ctx, exam.ExamID, &samples[i]); err != nil {
			return err
		}
	}

	fmt.Printf("✓ Đã tạo đề thi mẫu: %s\n\n", exam.ExamID)
	fmt.Println("Đề thi có 4 câu:")
	for i, q := range samples {
		fmt.Printf("  Câu %d: %s (Đáp án: %s)\n", i+1, q.Content, q.CorrectAnswer)
	}
	return nil
}

func chamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cham <exam-id> <student-id> <đáp-án>",
		Short: "Chấm bài từ chuỗi đáp án, ví dụ: cham E1A2B3C4 HS001 B,C,C,C",
		Args:  cobra.ExactArgs(3),
		RunE:  runCham,
	}
	return cmd
}

func runCham(cmd *cobra.Command, args []string) error {
	sm, err := newServices(cmd)
	if err != nil {
		return err
	}

	examID, studentID := args[0], args[1]
	letters := strings.Split(args[2], ",")

	ctx := cmd.Context()
	exam, err := sm.Exam().GetByID(ctx, examID)
	if err != nil {
		return err
	}

	// Positional answers map onto questions in exam order; extra letters
	// beyond the question count are ignored, missing ones count as wrong.
	answers := make(map[string]string)
	for i, q := range exam.Questions {
		if i >= len(letters) {
			break
		}
		answers[q.QuestionID] = strings.TrimSpace(letters[i])
	}

	submission, err := sm.Submission().Submit(ctx, &services.SubmitRequest{
		ExamID:    examID,
		StudentID: studentID,
		Answers:   answers,
	})
	if err != nil {
		return err
	}

	result, err := sm.Grading().GradeSubmission(ctx, submission.SubmissionID)
	if err != nil {
		return err
	}

	line := strings.Repeat("=", 50)
	fmt.Printf("\n%s\n", line)
	fmt.Printf("KẾT QUẢ - Học sinh: %s\n", studentID)
	fmt.Println(line)
	fmt.Printf("Điểm: %v/10\n", result.Score)
	fmt.Printf("Đúng: %d/%d câu\n", result.CorrectAnswers, result.TotalQuestions)
	fmt.Printf("Sai: %d/%d câu\n", result.WrongAnswers, result.TotalQuestions)

	fmt.Println("\nChi tiết:")
	for i, detail := range result.Details {
		status := "✗"
		if detail.IsCorrect {
			status = "✓"
		}
		fmt.Printf("  Câu %d: %s (Chọn: %s, Đúng: %s)\n", i+1, status, detail.StudentAnswer, detail.CorrectAnswer)
	}
	fmt.Printf("%s\n", line)
	return nil
}

func nhapCauCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nhapcau <exam-id> <file>",
		Short: "Nhập câu hỏi từ file CSV hoặc Excel vào đề thi",
		Args:  cobra.ExactArgs(2),
		RunE:  runNhapCau,
	}
	return cmd
}

func runNhapCau(cmd *cobra.Command, args []string) error {
	sm, err := newServices(cmd)
	if err != nil {
		return err
	}

	examID, path := args[0], args[1]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("không thể mở file %s: %w", path, err)
	}
	defer f.Close()

	result, err := sm.ImportExport().ImportQuestionsFromFile(cmd.Context(), f, filepath.Base(path), examID)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Nhập %d/%d câu hỏi thành công\n", result.SuccessCount, result.TotalRows)
	for _, e := range result.Errors {
		fmt.Printf("  ✗ %s: %s\n", e.Field, e.Message)
	}
	return nil
}

func xuatKetQuaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xuatketqua <exam-id>",
		Short: "Xuất kết quả của đề thi ra file CSV hoặc Excel",
		Args:  cobra.ExactArgs(1),
		RunE:  runXuatKetQua,
	}
	cmd.Flags().StringP("out", "o", "", "Đường dẫn file xuất (mặc định ket_qua_<exam-id>.csv)")
	return cmd
}

func runXuatKetQua(cmd *cobra.Command, args []string) error {
	sm, err := newServices(cmd)
	if err != nil {
		return err
	}

	examID := args[0]
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = fmt.Sprintf("ket_qua_%s.csv", examID)
	}

	var data []byte
	switch ext := strings.ToLower(filepath.Ext(out)); ext {
	case ".csv":
		data, err = sm.ImportExport().ExportResultsToCSV(cmd.Context(), examID)
	case ".xlsx":
		data, err = sm.ImportExport().ExportResultsToExcel(cmd.Context(), examID)
	default:
		return fmt.Errorf("định dạng xuất không được hỗ trợ: %s", ext)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("không thể ghi file %s: %w", out, err)
	}
	fmt.Printf("✓ Đã xuất kết quả: %s\n", out)
	return nil
}
