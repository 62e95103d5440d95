package persist_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirestack/recruit-core/internal/models"
	"hirestack/recruit-core/internal/persist"
	"hirestack/recruit-core/internal/store"
)

func newFileStorage(t *testing.T) persist.Storage {
	t.Helper()
	storage, err := persist.NewFileStorage(t.TempDir(), "root")
	require.NoError(t, err)
	return storage
}

func TestFileStorageRoundTrip(t *testing.T) {
	storage := newFileStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, "auth", []byte(`{"token":"t1"}`)))
	data, err := storage.Load(ctx, "auth")
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"t1"}`, string(data))

	require.NoError(t, storage.Delete(ctx, "auth"))
	_, err = storage.Load(ctx, "auth")
	assert.ErrorIs(t, err, persist.ErrNotFound)
}

func TestFileStorageMissingKeyIsNotFound(t *testing.T) {
	storage := newFileStorage(t)
	_, err := storage.Load(context.Background(), "jobs")
	assert.ErrorIs(t, err, persist.ErrNotFound)
}

func TestFileStorageNamespacesFiles(t *testing.T) {
	dir := t.TempDir()
	storage, err := persist.NewFileStorage(dir, "root")
	require.NoError(t, err)

	require.NoError(t, storage.Save(context.Background(), "auth", []byte(`{}`)))
	_, err = os.Stat(filepath.Join(dir, "root_auth.json"))
	assert.NoError(t, err)
}

func TestHydratorRoundTrip(t *testing.T) {
	storage := newFileStorage(t)
	ctx := context.Background()

	// First run: sign in, persist through the change observer.
	var hydrator *persist.Hydrator
	first := store.New(nil, nil, nil, nil, store.WithOnChange(func(slice string, snapshot any) {
		hydrator.OnChange(slice, snapshot)
	}))
	hydrator = persist.NewHydrator(first, storage)

	first.Session.Restore(store.SessionSnapshot{
		User:  &models.User{ID: "u1", Email: "a@b.co"},
		Token: "tok-1",
	})
	require.NoError(t, hydrator.Persist(ctx, store.SliceSession, store.SessionSnapshot{
		User:  &models.User{ID: "u1", Email: "a@b.co"},
		Token: "tok-1",
	}))
	require.NoError(t, hydrator.Persist(ctx, store.SliceRequisitions, store.RequisitionSnapshot{
		Requisitions: []models.Requisition{{ID: "r1", Title: "Backend Engineer"}},
	}))

	// Second run: a fresh store rehydrates the same view.
	second := store.New(nil, nil, nil, nil)
	require.False(t, second.Hydrated())
	require.NoError(t, persist.NewHydrator(second, storage).Restore(ctx))

	assert.True(t, second.Hydrated())
	session := second.Session.State()
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, "tok-1", session.Token)
	require.NotNil(t, session.User)
	assert.Equal(t, "a@b.co", session.User.Email)

	jobs := second.Requisitions.State()
	require.Len(t, jobs.Requisitions, 1)
	assert.Equal(t, "Backend Engineer", jobs.Requisitions[0].Title)
	assert.False(t, jobs.IsLoading, "in-flight markers never survive a restore")
	assert.Empty(t, jobs.Error)
}

func TestHydratorEmptyStorageStillMarksHydrated(t *testing.T) {
	st := store.New(nil, nil, nil, nil)
	require.NoError(t, persist.NewHydrator(st, newFileStorage(t)).Restore(context.Background()))

	assert.True(t, st.Hydrated())
	assert.False(t, st.Session.State().IsAuthenticated())
	assert.Empty(t, st.Requisitions.State().Requisitions)
}

func TestHydratorSkipsCorruptSnapshot(t *testing.T) {
	storage := newFileStorage(t)
	ctx := context.Background()
	require.NoError(t, storage.Save(ctx, store.SliceSession, []byte(`{not json`)))
	require.NoError(t, storage.Save(ctx, store.SliceRequisitions, []byte(`{"requisitions":[{"id":"r1"}]}`)))

	st := store.New(nil, nil, nil, nil)
	require.NoError(t, persist.NewHydrator(st, storage).Restore(ctx))

	assert.True(t, st.Hydrated())
	assert.False(t, st.Session.State().IsAuthenticated(), "corrupt slice starts empty")
	assert.Len(t, st.Requisitions.State().Requisitions, 1, "healthy slices still restore")
}

func TestHydratorPurge(t *testing.T) {
	storage := newFileStorage(t)
	ctx := context.Background()

	st := store.New(nil, nil, nil, nil)
	hydrator := persist.NewHydrator(st, storage)
	require.NoError(t, hydrator.Persist(ctx, store.SliceSession, store.SessionSnapshot{Token: "tok"}))

	require.NoError(t, hydrator.Purge(ctx))
	_, err := storage.Load(ctx, store.SliceSession)
	assert.True(t, errors.Is(err, persist.ErrNotFound))
}
