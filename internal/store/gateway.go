package store

import (
	"context"

	"hirestack/recruit-core/internal/api"
	"hirestack/recruit-core/internal/models"
)

// The slice gateways mirror the remote API one logical operation per
// method. *api.Client satisfies all four; tests substitute fakes.

type AuthGateway interface {
	SignUp(ctx context.Context, name, email, password string) (models.User, string, error)
	SignIn(ctx context.Context, email, password string) (models.User, string, error)
}

type RequisitionGateway interface {
	ListRequisitions(ctx context.Context, skip, limit int) ([]models.Requisition, error)
	GetRequisition(ctx context.Context, id string) (models.Requisition, error)
	CreateRequisition(ctx context.Context, data models.CreateRequisitionData) (models.Requisition, error)
	UpdateRequisition(ctx context.Context, id string, data models.CreateRequisitionData) (models.Requisition, error)
	DeleteRequisition(ctx context.Context, id string) error
}

type JobPostGateway interface {
	CreateJobPost(ctx context.Context, requisitionID int64, expiresInDays int) (models.JobPost, error)
	ListJobPosts(ctx context.Context, skip, limit int) ([]models.JobPost, error)
	GetJobPost(ctx context.Context, id int64) (models.JobPost, error)
	UpdateJobPost(ctx context.Context, id int64, data models.UpdateJobPostData) (models.JobPost, error)
	DeleteJobPost(ctx context.Context, id int64) error
	PublishJobPost(ctx context.Context, id int64, portals []string) error
	RegenerateDescription(ctx context.Context, id int64) (string, error)
	GenerateDescription(ctx context.Context, data models.GenerateDescriptionData) (string, error)
}

type ResumeGateway interface {
	AnalyzeSingle(ctx context.Context, requisitionID int64, file api.ResumeFile, candidateName string, progress api.ProgressFunc) (models.Analysis, error)
	AnalyzeBulk(ctx context.Context, requisitionID int64, files []api.ResumeFile, candidateNames []string, progress api.ProgressFunc) (models.BulkAnalysisResult, error)
	ListAnalyses(ctx context.Context, requisitionID int64) ([]models.Analysis, error)
	GetAnalysis(ctx context.Context, id int64) (models.Analysis, error)
	DeleteAnalysis(ctx context.Context, id int64) error
	GetAnalysisSummary(ctx context.Context, requisitionID int64) (models.AnalysisSummary, error)
	UploadResume(ctx context.Context, file api.ResumeFile, progress api.ProgressFunc) (models.Resume, error)
	MatchedResumes(ctx context.Context, requisitionID string) ([]models.Resume, error)
}
