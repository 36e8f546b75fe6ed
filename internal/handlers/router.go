package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/services"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/utils"
)

type HandlerManager struct {
	examHandler         *ExamHandler
	submissionHandler   *SubmissionHandler
	gradingHandler      *GradingHandler
	userHandler         *UserHandler
	importExportHandler *ImportExportHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		examHandler:         NewExamHandler(serviceManager.Exam(), logger),
		submissionHandler:   NewSubmissionHandler(serviceManager.Submission(), serviceManager.Grading(), logger),
		gradingHandler:      NewGradingHandler(serviceManager.Grading(), logger),
		userHandler:         NewUserHandler(serviceManager.User(), logger),
		importExportHandler: NewImportExportHandler(serviceManager.ImportExport(), logger),
	}
}

// HealthCheck reports service liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "cham-trac-nghiem",
	})
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Exam routes
		exams := v1.Group("/exams")
		{
			exams.POST("", hm.examHandler.CreateExam)
			exams.GET("", hm.examHandler.ListExams)
			exams.GET("/:id", hm.examHandler.GetExam)
			exams.PUT("/:id", hm.examHandler.UpdateExam)
			exams.DELETE("/:id", hm.examHandler.DeleteExam)
			exams.POST("/:id/questions", hm.examHandler.AddQuestion)

			// Import/export
			exams.POST("/import", hm.importExportHandler.ImportExam)
			exams.POST("/:id/questions/import", hm.importExportHandler.ImportQuestions)
			exams.GET("/:id/export", hm.importExportHandler.ExportExam)
			exams.GET("/:id/results/export", hm.importExportHandler.ExportResults)
		}

		// Submission routes
		submissions := v1.Group("/submissions")
		{
			submissions.POST("", hm.submissionHandler.Submit)
			submissions.GET("", hm.submissionHandler.ListSubmissions)
			submissions.GET("/:id", hm.submissionHandler.GetSubmission)
			submissions.POST("/:id/grade", hm.gradingHandler.GradeSubmission)
		}

		// Result routes
		results := v1.Group("/results")
		{
			results.GET("", hm.gradingHandler.ListResults)
			results.GET("/:id", hm.gradingHandler.GetResult)
		}

		// User routes
		users := v1.Group("/users")
		{
			users.POST("", hm.userHandler.CreateUser)
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/:id", hm.userHandler.GetUser)
			users.DELETE("/:id", hm.userHandler.DeleteUser)
		}
	}
}
