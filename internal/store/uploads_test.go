package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirestack/recruit-core/internal/api"
	"hirestack/recruit-core/internal/models"
)

func TestRecordProgressReplacesByFileName(t *testing.T) {
	st := newTestStore(nil, nil, nil, nil)

	st.Uploads.RecordProgress("cv.pdf", 10, models.UploadStatusUploading)
	st.Uploads.RecordProgress("cv.pdf", 60, models.UploadStatusUploading)
	st.Uploads.RecordProgress("other.pdf", 5, models.UploadStatusUploading)
	st.Uploads.RecordProgress("cv.pdf", 100, models.UploadStatusCompleted)

	progress := st.Uploads.State().Progress
	require.Len(t, progress, 2, "same file never duplicates")
	assert.Equal(t, "cv.pdf", progress[0].FileName)
	assert.Equal(t, 100, progress[0].Progress)
	assert.Equal(t, models.UploadStatusCompleted, progress[0].Status)
	assert.Equal(t, "other.pdf", progress[1].FileName)
}

func TestRecordProgressAcceptsAnyStatusSequence(t *testing.T) {
	st := newTestStore(nil, nil, nil, nil)

	// A retry can legally go error -> uploading; the tracker is a pure
	// projection and must not reject the transition.
	st.Uploads.RecordProgress("cv.pdf", 30, models.UploadStatusError)
	st.Uploads.RecordProgress("cv.pdf", 0, models.UploadStatusUploading)

	progress := st.Uploads.State().Progress
	require.Len(t, progress, 1)
	assert.Equal(t, models.UploadStatusUploading, progress[0].Status)
	assert.Equal(t, 0, progress[0].Progress)
}

func TestClearProgress(t *testing.T) {
	st := newTestStore(nil, nil, nil, nil)
	st.Uploads.RecordProgress("a.pdf", 50, models.UploadStatusUploading)
	st.Uploads.RecordProgress("b.pdf", 100, models.UploadStatusCompleted)

	st.Uploads.ClearProgress()

	assert.Empty(t, st.Uploads.State().Progress)
}

func TestUploadAppendsToLibraryAndTracksProgress(t *testing.T) {
	resumes := &fakeResumes{
		upload: func(_ context.Context, file api.ResumeFile, progress api.ProgressFunc) (models.Resume, error) {
			progress(50)
			return models.Resume{ID: "res-" + file.Name, FileName: file.Name}, nil
		},
	}
	st := newTestStore(nil, nil, nil, resumes)

	files := []api.ResumeFile{{Name: "a.pdf"}, {Name: "b.pdf"}}
	uploaded, err := st.Uploads.Upload(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, uploaded, 2)

	state := st.Uploads.State()
	assert.Len(t, state.Resumes, 2)
	require.Len(t, state.Progress, 2)
	for _, p := range state.Progress {
		assert.Equal(t, 100, p.Progress)
		assert.Equal(t, models.UploadStatusCompleted, p.Status)
	}
}

func TestUploadFirstFailureAborts(t *testing.T) {
	resumes := &fakeResumes{
		upload: func(_ context.Context, file api.ResumeFile, progress api.ProgressFunc) (models.Resume, error) {
			if file.Name == "b.pdf" {
				progress(35)
				return models.Resume{}, errors.New("Failed to upload resumes")
			}
			return models.Resume{ID: "res-a", FileName: file.Name}, nil
		},
	}
	st := newTestStore(nil, nil, nil, resumes)

	files := []api.ResumeFile{{Name: "a.pdf"}, {Name: "b.pdf"}, {Name: "c.pdf"}}
	_, err := st.Uploads.Upload(context.Background(), files)
	require.Error(t, err)

	state := st.Uploads.State()
	assert.Empty(t, state.Resumes, "aborted batch commits nothing to the library")
	require.Len(t, state.Progress, 2, "the file after the failure is never started")
	assert.Equal(t, models.UploadStatusCompleted, state.Progress[0].Status)
	assert.Equal(t, models.UploadStatusError, state.Progress[1].Status)
	assert.Equal(t, 35, state.Progress[1].Progress, "error keeps last-known percentage")
}

func TestFetchMatchedReplaces(t *testing.T) {
	resumes := &fakeResumes{
		matched: func(_ context.Context, reqID string) ([]models.Resume, error) {
			return []models.Resume{{ID: "m1", Status: models.ResumeStatusMatched}}, nil
		},
	}
	st := newTestStore(nil, nil, nil, resumes)

	matched, err := st.Uploads.FetchMatched(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, models.ResumeStatusMatched, st.Uploads.State().Matched[0].Status)
}
