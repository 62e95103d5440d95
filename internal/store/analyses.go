package store

import (
	"context"
	"sync/atomic"

	"hirestack/recruit-core/internal/api"
	"hirestack/recruit-core/internal/models"
)

// ProgressReporter is the capability the analysis slice uses to drive the
// upload tracker. It is injected at store construction; the slice never
// reaches into the tracker's internals.
type ProgressReporter func(fileName string, percent int, status models.UploadStatus)

// AnalysisSlice is the normalized store of match results: a per-
// requisition index and a by-id index that must stay mutually consistent,
// plus server-computed summaries.
type AnalysisSlice struct {
	opState
	gw     ResumeGateway
	report ProgressReporter

	byRequisition map[int64][]models.Analysis
	byID          map[int64]models.Analysis
	summaries     map[int64]models.AnalysisSummary
	lastBulk      *models.BulkAnalysisResult
}

// AnalysisState is a read-only snapshot of the analysis slice.
type AnalysisState struct {
	ByRequisition map[int64][]models.Analysis
	ByID          map[int64]models.Analysis
	Summaries     map[int64]models.AnalysisSummary
	LastBulk      *models.BulkAnalysisResult
	IsLoading     bool
	Error         string
}

// AnalysisSnapshot is the persisted plain-data form.
type AnalysisSnapshot struct {
	ByRequisition map[int64][]models.Analysis      `json:"by_requisition"`
	ByID          map[int64]models.Analysis        `json:"by_id"`
	Summaries     map[int64]models.AnalysisSummary `json:"summaries"`
	LastBulk      *models.BulkAnalysisResult       `json:"last_bulk"`
}

// State returns a copy of the current analysis state.
func (s *AnalysisSlice) State() AnalysisState {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	st := AnalysisState{
		ByRequisition: copyAnalysisIndex(s.byRequisition),
		ByID:          copyAnalysisMap(s.byID),
		Summaries:     copySummaries(s.summaries),
		IsLoading:     s.isLoading,
		Error:         s.errMsg,
	}
	if s.lastBulk != nil {
		lb := *s.lastBulk
		lb.Candidates = append([]models.Analysis(nil), s.lastBulk.Candidates...)
		st.LastBulk = &lb
	}
	return st
}

// ForRequisition returns the cached results for one requisition.
func (s *AnalysisSlice) ForRequisition(requisitionID int64) []models.Analysis {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return append([]models.Analysis(nil), s.byRequisition[requisitionID]...)
}

// AnalyzeSingle submits one resume for analysis. The confirmed result is
// upserted into the requisition's list: replaced in place when the id is
// already cached, prepended otherwise.
func (s *AnalysisSlice) AnalyzeSingle(ctx context.Context, requisitionID int64, file api.ResumeFile, candidateName string) (models.Analysis, error) {
	if candidateName == "" {
		candidateName = models.DeriveCandidateName(file.Name)
	}

	s.begin()
	var lastPercent atomic.Int64
	s.emit(file.Name, 0, models.UploadStatusUploading)
	item, err := s.gw.AnalyzeSingle(ctx, requisitionID, file, candidateName, func(percent int) {
		lastPercent.Store(int64(percent))
		s.emit(file.Name, percent, models.UploadStatusUploading)
	})
	if err != nil {
		s.emit(file.Name, int(lastPercent.Load()), models.UploadStatusError)
		return models.Analysis{}, s.fail(err)
	}
	s.emit(file.Name, 100, models.UploadStatusCompleted)

	s.store.mu.Lock()
	s.isLoading = false
	s.upsertLocked(item, true)
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceAnalyses, snap)
	return item, nil
}

// AnalyzeBulk submits a batch of resumes in one request. All files share
// the aggregate transfer percentage and succeed or fail together. A
// successful bulk call replaces the requisition's entire cached result
// list with the returned candidate set; it never merges.
//
// If candidateNames does not match the file list in length, derived names
// are used for the whole batch.
func (s *AnalysisSlice) AnalyzeBulk(ctx context.Context, requisitionID int64, files []api.ResumeFile, candidateNames []string) (models.BulkAnalysisResult, error) {
	names := candidateNames
	if len(names) != len(files) {
		names = make([]string, len(files))
		for i, f := range files {
			names[i] = models.DeriveCandidateName(f.Name)
		}
	}

	s.begin()
	var lastPercent atomic.Int64
	for _, f := range files {
		s.emit(f.Name, 0, models.UploadStatusUploading)
	}
	result, err := s.gw.AnalyzeBulk(ctx, requisitionID, files, names, func(percent int) {
		lastPercent.Store(int64(percent))
		for _, f := range files {
			s.emit(f.Name, percent, models.UploadStatusUploading)
		}
	})
	if err != nil {
		for _, f := range files {
			s.emit(f.Name, int(lastPercent.Load()), models.UploadStatusError)
		}
		return models.BulkAnalysisResult{}, s.fail(err)
	}
	for _, f := range files {
		s.emit(f.Name, 100, models.UploadStatusCompleted)
	}

	s.store.mu.Lock()
	s.isLoading = false
	lb := result
	s.lastBulk = &lb
	s.replaceRequisitionLocked(requisitionID, result.Candidates)
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceAnalyses, snap)
	return result, nil
}

// FetchByRequisition replaces the requisition's cached list with the
// server's current result set.
func (s *AnalysisSlice) FetchByRequisition(ctx context.Context, requisitionID int64) ([]models.Analysis, error) {
	s.begin()
	items, err := s.gw.ListAnalyses(ctx, requisitionID)
	if err != nil {
		return nil, s.fail(err)
	}

	s.store.mu.Lock()
	s.isLoading = false
	s.replaceRequisitionLocked(requisitionID, items)
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceAnalyses, snap)
	return append([]models.Analysis(nil), items...), nil
}

// FetchByID fetches one analysis and upserts it into both indexes
// (appended to its requisition's list when not already present).
func (s *AnalysisSlice) FetchByID(ctx context.Context, analysisID int64) (models.Analysis, error) {
	if analysisID == 0 {
		return models.Analysis{}, ErrNoID
	}
	s.begin()
	item, err := s.gw.GetAnalysis(ctx, analysisID)
	if err != nil {
		return models.Analysis{}, s.fail(err)
	}

	s.store.mu.Lock()
	s.isLoading = false
	s.upsertLocked(item, false)
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceAnalyses, snap)
	return item, nil
}

// Delete removes an analysis from the by-id index and, when the item is
// cached, from its requisition's list. Deleting an id the cache has never
// seen leaves both indexes untouched without erroring the slice.
func (s *AnalysisSlice) Delete(ctx context.Context, analysisID int64) error {
	if analysisID == 0 {
		return ErrNoID
	}
	s.begin()
	if err := s.gw.DeleteAnalysis(ctx, analysisID); err != nil {
		return s.fail(err)
	}

	s.store.mu.Lock()
	s.isLoading = false
	if item, ok := s.byID[analysisID]; ok {
		reqID := item.RequisitionID
		list := s.byRequisition[reqID]
		kept := list[:0:0]
		for _, a := range list {
			if a.ID != analysisID {
				kept = append(kept, a)
			}
		}
		s.byRequisition[reqID] = kept
		delete(s.byID, analysisID)
	}
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceAnalyses, snap)
	return nil
}

// FetchSummary overwrites the cached summary for a requisition with the
// server's aggregate. No merge logic: the server is authoritative.
func (s *AnalysisSlice) FetchSummary(ctx context.Context, requisitionID int64) (models.AnalysisSummary, error) {
	s.begin()
	summary, err := s.gw.GetAnalysisSummary(ctx, requisitionID)
	if err != nil {
		return models.AnalysisSummary{}, s.fail(err)
	}

	s.store.mu.Lock()
	s.isLoading = false
	if s.summaries == nil {
		s.summaries = map[int64]models.AnalysisSummary{}
	}
	s.summaries[requisitionID] = summary
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceAnalyses, snap)
	return summary, nil
}

func (s *AnalysisSlice) emit(fileName string, percent int, status models.UploadStatus) {
	if s.report != nil {
		s.report(fileName, percent, status)
	}
}

// upsertLocked inserts item into both indexes. An existing entry with the
// same id is replaced in place; otherwise the item is prepended (single
// analysis) or appended (by-id fetch) to its requisition's list.
func (s *AnalysisSlice) upsertLocked(item models.Analysis, prepend bool) {
	if s.byID == nil {
		s.byID = map[int64]models.Analysis{}
	}
	if s.byRequisition == nil {
		s.byRequisition = map[int64][]models.Analysis{}
	}
	s.byID[item.ID] = item

	list := s.byRequisition[item.RequisitionID]
	for i := range list {
		if list[i].ID == item.ID {
			list[i] = item
			s.byRequisition[item.RequisitionID] = list
			return
		}
	}
	if prepend {
		list = append([]models.Analysis{item}, list...)
	} else {
		list = append(list, item)
	}
	s.byRequisition[item.RequisitionID] = list
}

// replaceRequisitionLocked swaps in a whole new result list for one
// requisition. Entries from the previous list that did not survive are
// dropped from the by-id index too, keeping the two indexes mutually
// consistent.
func (s *AnalysisSlice) replaceRequisitionLocked(requisitionID int64, items []models.Analysis) {
	if s.byID == nil {
		s.byID = map[int64]models.Analysis{}
	}
	if s.byRequisition == nil {
		s.byRequisition = map[int64][]models.Analysis{}
	}

	surviving := make(map[int64]bool, len(items))
	for _, item := range items {
		surviving[item.ID] = true
	}
	for _, old := range s.byRequisition[requisitionID] {
		if !surviving[old.ID] {
			delete(s.byID, old.ID)
		}
	}

	s.byRequisition[requisitionID] = append([]models.Analysis(nil), items...)
	for _, item := range items {
		s.byID[item.ID] = item
	}
}

func (s *AnalysisSlice) snapshotLocked() AnalysisSnapshot {
	snap := AnalysisSnapshot{
		ByRequisition: copyAnalysisIndex(s.byRequisition),
		ByID:          copyAnalysisMap(s.byID),
		Summaries:     copySummaries(s.summaries),
	}
	if s.lastBulk != nil {
		lb := *s.lastBulk
		lb.Candidates = append([]models.Analysis(nil), s.lastBulk.Candidates...)
		snap.LastBulk = &lb
	}
	return snap
}

// Restore applies a persisted snapshot.
func (s *AnalysisSlice) Restore(snap AnalysisSnapshot) {
	s.store.mu.Lock()
	s.byRequisition = snap.ByRequisition
	s.byID = snap.ByID
	s.summaries = snap.Summaries
	s.lastBulk = snap.LastBulk
	s.store.mu.Unlock()
}

func copyAnalysisIndex(in map[int64][]models.Analysis) map[int64][]models.Analysis {
	out := make(map[int64][]models.Analysis, len(in))
	for k, v := range in {
		out[k] = append([]models.Analysis(nil), v...)
	}
	return out
}

func copyAnalysisMap(in map[int64]models.Analysis) map[int64]models.Analysis {
	out := make(map[int64]models.Analysis, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copySummaries(in map[int64]models.AnalysisSummary) map[int64]models.AnalysisSummary {
	out := make(map[int64]models.AnalysisSummary, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
