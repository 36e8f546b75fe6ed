package services

import (
	"log/slog"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/cache"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/events"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories"
	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/validator"
)

// ServiceManager bundles the business services behind one explicitly
// constructed handle. Lifetime is the caller's: there are no package-level
// instances anywhere in the module.
type ServiceManager interface {
	Exam() ExamService
	Submission() SubmissionService
	Grading() GradingService
	User() UserService
	ImportExport() ImportExportService
}

// Deps carries everything the services need. Cache and Publisher are
// optional; nil disables the concern.
type Deps struct {
	Repo      repositories.Repository
	Logger    *slog.Logger
	Validator *validator.Validator
	Cache     cache.CacheService
	Publisher events.EventPublisher
}

type serviceManager struct {
	exam         ExamService
	submission   SubmissionService
	grading      GradingService
	user         UserService
	importExport ImportExportService
}

func NewServiceManager(deps Deps) ServiceManager {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	// One lock scope for every service that mutates exam records.
	locks := newKeyMutex()
	return &serviceManager{
		exam:         NewExamService(deps.Repo, deps.Logger, deps.Validator, deps.Cache, deps.Publisher, locks),
		submission:   NewSubmissionService(deps.Repo, deps.Logger, deps.Validator, deps.Publisher),
		grading:      NewGradingService(deps.Repo, deps.Logger, deps.Publisher),
		user:         NewUserService(deps.Repo, deps.Logger, deps.Validator),
		importExport: NewImportExportService(deps.Repo, deps.Logger, locks),
	}
}

func (m *serviceManager) Exam() ExamService                 { return m.exam }
func (m *serviceManager) Submission() SubmissionService     { return m.submission }
func (m *serviceManager) Grading() GradingService           { return m.grading }
func (m *serviceManager) User() UserService                 { return m.user }
func (m *serviceManager) ImportExport() ImportExportService { return m.importExport }
