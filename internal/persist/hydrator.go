package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"hirestack/recruit-core/internal/store"
)

// Hydrator restores whitelisted slices on startup and writes committed
// snapshots back as they change. Restore must finish before the store is
// handed to consumers; until then Store.Hydrated reports false.
type Hydrator struct {
	store   *store.Store
	storage Storage
}

func NewHydrator(st *store.Store, storage Storage) *Hydrator {
	return &Hydrator{store: st, storage: storage}
}

// whitelist is the set of slices that survive restarts. In-flight
// markers (isLoading, error) are excluded at the snapshot level, so a
// restored store never resumes mid-operation.
var whitelist = []string{
	store.SliceSession,
	store.SliceRequisitions,
	store.SliceJobPosts,
	store.SliceUploads,
	store.SliceAnalyses,
}

// Restore loads every whitelisted slice and applies it to the store, then
// marks the store hydrated. A missing snapshot leaves that slice at its
// zero state; a corrupt one is reported and skipped rather than aborting
// the whole hydration.
func (h *Hydrator) Restore(ctx context.Context) error {
	for _, slice := range whitelist {
		data, err := h.storage.Load(ctx, slice)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if err := h.apply(slice, data); err != nil {
			log.Printf("❌ Skipping corrupt snapshot %q: %v", slice, err)
		}
	}
	h.store.MarkHydrated()
	return nil
}

func (h *Hydrator) apply(slice string, data []byte) error {
	switch slice {
	case store.SliceSession:
		var snap store.SessionSnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return err
		}
		h.store.Session.Restore(snap)
	case store.SliceRequisitions:
		var snap store.RequisitionSnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return err
		}
		h.store.Requisitions.Restore(snap)
	case store.SliceJobPosts:
		var snap store.JobPostSnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return err
		}
		h.store.JobPosts.Restore(snap)
	case store.SliceUploads:
		var snap store.UploadSnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return err
		}
		h.store.Uploads.Restore(snap)
	case store.SliceAnalyses:
		var snap store.AnalysisSnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return err
		}
		h.store.Analyses.Restore(snap)
	default:
		return fmt.Errorf("unknown slice %q", slice)
	}
	return nil
}

// Persist writes one committed snapshot through to storage.
func (h *Hydrator) Persist(ctx context.Context, slice string, snapshot any) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %q: %w", slice, err)
	}
	return h.storage.Save(ctx, slice, data)
}

// OnChange adapts Persist to the store's change observer. Persistence
// failures are logged, never propagated into the committing intent.
func (h *Hydrator) OnChange(slice string, snapshot any) {
	if err := h.Persist(context.Background(), slice, snapshot); err != nil {
		log.Printf("❌ Failed to persist slice %q: %v", slice, err)
	}
}

// Purge deletes every persisted snapshot. The in-memory store is left
// untouched.
func (h *Hydrator) Purge(ctx context.Context) error {
	for _, slice := range whitelist {
		if err := h.storage.Delete(ctx, slice); err != nil {
			return err
		}
	}
	return nil
}
