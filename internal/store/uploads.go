package store

import (
	"context"

	"hirestack/recruit-core/internal/api"
	"hirestack/recruit-core/internal/models"
)

// UploadSlice tracks per-file upload progress for the open upload surface
// plus the resume library (uploaded and matched resumes).
//
// The progress tracker is a pure projection surface: RecordProgress
// accepts any status sequence (retries are driven externally) and never
// touches the network itself. The analysis slice and the Upload intent
// drive it through the progress-reporter contract.
type UploadSlice struct {
	opState
	gw ResumeGateway

	progress []models.UploadProgress
	resumes  []models.Resume
	matched  []models.Resume
}

// UploadState is a read-only snapshot of the upload slice.
type UploadState struct {
	Progress  []models.UploadProgress
	Resumes   []models.Resume
	Matched   []models.Resume
	IsLoading bool
	Error     string
}

// UploadSnapshot is the persisted plain-data form.
type UploadSnapshot struct {
	Progress []models.UploadProgress `json:"upload_progress"`
	Resumes  []models.Resume         `json:"resumes"`
	Matched  []models.Resume         `json:"matched_resumes"`
}

// State returns a copy of the current upload state.
func (s *UploadSlice) State() UploadState {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return UploadState{
		Progress:  copyProgress(s.progress),
		Resumes:   copyResumes(s.resumes),
		Matched:   copyResumes(s.matched),
		IsLoading: s.isLoading,
		Error:     s.errMsg,
	}
}

// RecordProgress upserts the progress record for fileName: an existing
// record with the same name is replaced in place, never duplicated.
func (s *UploadSlice) RecordProgress(fileName string, percent int, status models.UploadStatus) {
	s.store.mu.Lock()
	record := models.UploadProgress{FileName: fileName, Progress: percent, Status: status}
	replaced := false
	for i := range s.progress {
		if s.progress[i].FileName == fileName {
			s.progress[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		s.progress = append(s.progress, record)
	}
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceUploads, snap)
}

// markError flips a file's record to the error status while keeping its
// last-known percentage.
func (s *UploadSlice) markError(fileName string) {
	s.store.mu.Lock()
	for i := range s.progress {
		if s.progress[i].FileName == fileName {
			s.progress[i].Status = models.UploadStatusError
		}
	}
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceUploads, snap)
}

// ClearProgress wipes every progress record. Called when the upload
// surface closes.
func (s *UploadSlice) ClearProgress() {
	s.store.mu.Lock()
	s.progress = nil
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceUploads, snap)
}

// Upload transfers the given files into the resume library one by one,
// driving the progress tracker for each, and appends the confirmed
// records to the library. The first failure aborts the remainder of the
// batch.
func (s *UploadSlice) Upload(ctx context.Context, files []api.ResumeFile) ([]models.Resume, error) {
	s.begin()
	uploaded := make([]models.Resume, 0, len(files))
	for _, file := range files {
		name := file.Name
		s.RecordProgress(name, 0, models.UploadStatusUploading)
		resume, err := s.gw.UploadResume(ctx, file, func(percent int) {
			s.RecordProgress(name, percent, models.UploadStatusUploading)
		})
		if err != nil {
			s.markError(name)
			return nil, s.fail(err)
		}
		s.RecordProgress(name, 100, models.UploadStatusCompleted)
		uploaded = append(uploaded, resume)
	}

	s.store.mu.Lock()
	s.isLoading = false
	s.resumes = append(s.resumes, uploaded...)
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceUploads, snap)
	return uploaded, nil
}

// FetchMatched replaces the matched-resume list for a requisition.
func (s *UploadSlice) FetchMatched(ctx context.Context, requisitionID string) ([]models.Resume, error) {
	if requisitionID == "" {
		return nil, ErrNoID
	}
	s.begin()
	matched, err := s.gw.MatchedResumes(ctx, requisitionID)
	if err != nil {
		return nil, s.fail(err)
	}

	s.store.mu.Lock()
	s.isLoading = false
	s.matched = matched
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceUploads, snap)
	return copyResumes(matched), nil
}

func (s *UploadSlice) snapshotLocked() UploadSnapshot {
	return UploadSnapshot{
		Progress: copyProgress(s.progress),
		Resumes:  copyResumes(s.resumes),
		Matched:  copyResumes(s.matched),
	}
}

// Restore applies a persisted snapshot.
func (s *UploadSlice) Restore(snap UploadSnapshot) {
	s.store.mu.Lock()
	s.progress = snap.Progress
	s.resumes = snap.Resumes
	s.matched = snap.Matched
	s.store.mu.Unlock()
}

func copyProgress(items []models.UploadProgress) []models.UploadProgress {
	out := make([]models.UploadProgress, len(items))
	copy(out, items)
	return out
}

func copyResumes(items []models.Resume) []models.Resume {
	out := make([]models.Resume, len(items))
	copy(out, items)
	return out
}
