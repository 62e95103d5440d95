package store_test

import (
	"context"
	"errors"

	"hirestack/recruit-core/internal/api"
	"hirestack/recruit-core/internal/models"
	"hirestack/recruit-core/internal/store"
)

// The fakes carry one func field per gateway method; unset methods fail
// loudly so a test cannot silently exercise the wrong operation.

var errUnexpectedCall = errors.New("unexpected gateway call")

type fakeAuth struct {
	signUp func(ctx context.Context, name, email, password string) (models.User, string, error)
	signIn func(ctx context.Context, email, password string) (models.User, string, error)
}

func (f *fakeAuth) SignUp(ctx context.Context, name, email, password string) (models.User, string, error) {
	if f.signUp == nil {
		return models.User{}, "", errUnexpectedCall
	}
	return f.signUp(ctx, name, email, password)
}

func (f *fakeAuth) SignIn(ctx context.Context, email, password string) (models.User, string, error) {
	if f.signIn == nil {
		return models.User{}, "", errUnexpectedCall
	}
	return f.signIn(ctx, email, password)
}

type fakeRequisitions struct {
	list   func(ctx context.Context, skip, limit int) ([]models.Requisition, error)
	get    func(ctx context.Context, id string) (models.Requisition, error)
	create func(ctx context.Context, data models.CreateRequisitionData) (models.Requisition, error)
	update func(ctx context.Context, id string, data models.CreateRequisitionData) (models.Requisition, error)
	del    func(ctx context.Context, id string) error
}

func (f *fakeRequisitions) ListRequisitions(ctx context.Context, skip, limit int) ([]models.Requisition, error) {
	if f.list == nil {
		return nil, errUnexpectedCall
	}
	return f.list(ctx, skip, limit)
}

func (f *fakeRequisitions) GetRequisition(ctx context.Context, id string) (models.Requisition, error) {
	if f.get == nil {
		return models.Requisition{}, errUnexpectedCall
	}
	return f.get(ctx, id)
}

func (f *fakeRequisitions) CreateRequisition(ctx context.Context, data models.CreateRequisitionData) (models.Requisition, error) {
	if f.create == nil {
		return models.Requisition{}, errUnexpectedCall
	}
	return f.create(ctx, data)
}

func (f *fakeRequisitions) UpdateRequisition(ctx context.Context, id string, data models.CreateRequisitionData) (models.Requisition, error) {
	if f.update == nil {
		return models.Requisition{}, errUnexpectedCall
	}
	return f.update(ctx, id, data)
}

func (f *fakeRequisitions) DeleteRequisition(ctx context.Context, id string) error {
	if f.del == nil {
		return errUnexpectedCall
	}
	return f.del(ctx, id)
}

type fakeJobPosts struct {
	create     func(ctx context.Context, requisitionID int64, expiresInDays int) (models.JobPost, error)
	list       func(ctx context.Context, skip, limit int) ([]models.JobPost, error)
	get        func(ctx context.Context, id int64) (models.JobPost, error)
	update     func(ctx context.Context, id int64, data models.UpdateJobPostData) (models.JobPost, error)
	del        func(ctx context.Context, id int64) error
	publish    func(ctx context.Context, id int64, portals []string) error
	regenerate func(ctx context.Context, id int64) (string, error)
	generate   func(ctx context.Context, data models.GenerateDescriptionData) (string, error)
}

func (f *fakeJobPosts) CreateJobPost(ctx context.Context, requisitionID int64, expiresInDays int) (models.JobPost, error) {
	if f.create == nil {
		return models.JobPost{}, errUnexpectedCall
	}
	return f.create(ctx, requisitionID, expiresInDays)
}

func (f *fakeJobPosts) ListJobPosts(ctx context.Context, skip, limit int) ([]models.JobPost, error) {
	if f.list == nil {
		return nil, errUnexpectedCall
	}
	return f.list(ctx, skip, limit)
}

func (f *fakeJobPosts) GetJobPost(ctx context.Context, id int64) (models.JobPost, error) {
	if f.get == nil {
		return models.JobPost{}, errUnexpectedCall
	}
	return f.get(ctx, id)
}

func (f *fakeJobPosts) UpdateJobPost(ctx context.Context, id int64, data models.UpdateJobPostData) (models.JobPost, error) {
	if f.update == nil {
		return models.JobPost{}, errUnexpectedCall
	}
	return f.update(ctx, id, data)
}

func (f *fakeJobPosts) DeleteJobPost(ctx context.Context, id int64) error {
	if f.del == nil {
		return errUnexpectedCall
	}
	return f.del(ctx, id)
}

func (f *fakeJobPosts) PublishJobPost(ctx context.Context, id int64, portals []string) error {
	if f.publish == nil {
		return errUnexpectedCall
	}
	return f.publish(ctx, id, portals)
}

func (f *fakeJobPosts) RegenerateDescription(ctx context.Context, id int64) (string, error) {
	if f.regenerate == nil {
		return "", errUnexpectedCall
	}
	return f.regenerate(ctx, id)
}

func (f *fakeJobPosts) GenerateDescription(ctx context.Context, data models.GenerateDescriptionData) (string, error) {
	if f.generate == nil {
		return "", errUnexpectedCall
	}
	return f.generate(ctx, data)
}

type fakeResumes struct {
	analyzeSingle func(ctx context.Context, requisitionID int64, file api.ResumeFile, candidateName string, progress api.ProgressFunc) (models.Analysis, error)
	analyzeBulk   func(ctx context.Context, requisitionID int64, files []api.ResumeFile, candidateNames []string, progress api.ProgressFunc) (models.BulkAnalysisResult, error)
	list          func(ctx context.Context, requisitionID int64) ([]models.Analysis, error)
	get           func(ctx context.Context, id int64) (models.Analysis, error)
	del           func(ctx context.Context, id int64) error
	summary       func(ctx context.Context, requisitionID int64) (models.AnalysisSummary, error)
	upload        func(ctx context.Context, file api.ResumeFile, progress api.ProgressFunc) (models.Resume, error)
	matched       func(ctx context.Context, requisitionID string) ([]models.Resume, error)
}

func (f *fakeResumes) AnalyzeSingle(ctx context.Context, requisitionID int64, file api.ResumeFile, candidateName string, progress api.ProgressFunc) (models.Analysis, error) {
	if f.analyzeSingle == nil {
		return models.Analysis{}, errUnexpectedCall
	}
	return f.analyzeSingle(ctx, requisitionID, file, candidateName, progress)
}

func (f *fakeResumes) AnalyzeBulk(ctx context.Context, requisitionID int64, files []api.ResumeFile, candidateNames []string, progress api.ProgressFunc) (models.BulkAnalysisResult, error) {
	if f.analyzeBulk == nil {
		return models.BulkAnalysisResult{}, errUnexpectedCall
	}
	return f.analyzeBulk(ctx, requisitionID, files, candidateNames, progress)
}

func (f *fakeResumes) ListAnalyses(ctx context.Context, requisitionID int64) ([]models.Analysis, error) {
	if f.list == nil {
		return nil, errUnexpectedCall
	}
	return f.list(ctx, requisitionID)
}

func (f *fakeResumes) GetAnalysis(ctx context.Context, id int64) (models.Analysis, error) {
	if f.get == nil {
		return models.Analysis{}, errUnexpectedCall
	}
	return f.get(ctx, id)
}

func (f *fakeResumes) DeleteAnalysis(ctx context.Context, id int64) error {
	if f.del == nil {
		return errUnexpectedCall
	}
	return f.del(ctx, id)
}

func (f *fakeResumes) GetAnalysisSummary(ctx context.Context, requisitionID int64) (models.AnalysisSummary, error) {
	if f.summary == nil {
		return models.AnalysisSummary{}, errUnexpectedCall
	}
	return f.summary(ctx, requisitionID)
}

func (f *fakeResumes) UploadResume(ctx context.Context, file api.ResumeFile, progress api.ProgressFunc) (models.Resume, error) {
	if f.upload == nil {
		return models.Resume{}, errUnexpectedCall
	}
	return f.upload(ctx, file, progress)
}

func (f *fakeResumes) MatchedResumes(ctx context.Context, requisitionID string) ([]models.Resume, error) {
	if f.matched == nil {
		return nil, errUnexpectedCall
	}
	return f.matched(ctx, requisitionID)
}

// newTestStore wires a store over the given fakes; nil fakes become empty
// ones so tests only configure the gateways they touch.
func newTestStore(auth *fakeAuth, reqs *fakeRequisitions, posts *fakeJobPosts, resumes *fakeResumes, opts ...store.Option) *store.Store {
	if auth == nil {
		auth = &fakeAuth{}
	}
	if reqs == nil {
		reqs = &fakeRequisitions{}
	}
	if posts == nil {
		posts = &fakeJobPosts{}
	}
	if resumes == nil {
		resumes = &fakeResumes{}
	}
	return store.New(auth, reqs, posts, resumes, opts...)
}
