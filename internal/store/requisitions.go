package store

import (
	"context"
	"errors"

	"hirestack/recruit-core/internal/models"
)

// ErrNoID is returned for programmer errors: calling an update or delete
// intent with an empty identifier.
var ErrNoID = errors.New("entity id is required")

// RequisitionSlice holds the requisition collection and the single
// "selected" requisition tracked for detail/edit views.
type RequisitionSlice struct {
	opState
	gw RequisitionGateway

	items    []models.Requisition
	selected *models.Requisition
}

// RequisitionState is a read-only snapshot of the requisition slice.
type RequisitionState struct {
	Requisitions []models.Requisition
	Selected     *models.Requisition
	IsLoading    bool
	Error        string
}

// RequisitionSnapshot is the persisted plain-data form.
type RequisitionSnapshot struct {
	Requisitions []models.Requisition `json:"requisitions"`
	Selected     *models.Requisition  `json:"selected"`
}

// State returns a copy of the current requisition state.
func (s *RequisitionSlice) State() RequisitionState {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	st := RequisitionState{
		Requisitions: copyRequisitions(s.items),
		IsLoading:    s.isLoading,
		Error:        s.errMsg,
	}
	if s.selected != nil {
		sel := *s.selected
		st.Selected = &sel
	}
	return st
}

// Fetch replaces the collection with a page of requisitions from the
// server. A failed fetch leaves the prior collection untouched.
func (s *RequisitionSlice) Fetch(ctx context.Context, skip, limit int) ([]models.Requisition, error) {
	s.begin()
	items, err := s.gw.ListRequisitions(ctx, skip, limit)
	if err != nil {
		return nil, s.fail(err)
	}

	s.store.mu.Lock()
	s.isLoading = false
	s.items = items
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceRequisitions, snap)
	return copyRequisitions(items), nil
}

// FetchByID fetches one requisition and makes it the selected entry.
func (s *RequisitionSlice) FetchByID(ctx context.Context, id string) (models.Requisition, error) {
	if id == "" {
		return models.Requisition{}, ErrNoID
	}
	s.begin()
	item, err := s.gw.GetRequisition(ctx, id)
	if err != nil {
		return models.Requisition{}, s.fail(err)
	}

	s.store.mu.Lock()
	s.isLoading = false
	sel := item
	s.selected = &sel
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceRequisitions, snap)
	return item, nil
}

// Create posts a validated payload and prepends the confirmed entity to
// the collection. The payload is trusted as-is; remote validation errors
// surface verbatim.
func (s *RequisitionSlice) Create(ctx context.Context, data models.CreateRequisitionData) (models.Requisition, error) {
	s.begin()
	item, err := s.gw.CreateRequisition(ctx, data)
	if err != nil {
		return models.Requisition{}, s.fail(err)
	}

	s.store.mu.Lock()
	s.isLoading = false
	s.items = append([]models.Requisition{item}, s.items...)
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceRequisitions, snap)
	return item, nil
}

// Update replaces the matching collection entry and refreshes the
// selection when it points at the same requisition.
func (s *RequisitionSlice) Update(ctx context.Context, id string, data models.CreateRequisitionData) (models.Requisition, error) {
	if id == "" {
		return models.Requisition{}, ErrNoID
	}
	s.begin()
	item, err := s.gw.UpdateRequisition(ctx, id, data)
	if err != nil {
		return models.Requisition{}, s.fail(err)
	}

	s.store.mu.Lock()
	s.isLoading = false
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = item
			break
		}
	}
	if s.selected != nil && s.selected.ID == item.ID {
		sel := item
		s.selected = &sel
	}
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceRequisitions, snap)
	return item, nil
}

// Delete removes the matching entry and clears the selection when it
// points at the deleted requisition.
func (s *RequisitionSlice) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrNoID
	}
	s.begin()
	if err := s.gw.DeleteRequisition(ctx, id); err != nil {
		return s.fail(err)
	}

	s.store.mu.Lock()
	s.isLoading = false
	kept := s.items[:0:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceRequisitions, snap)
	return nil
}

// Select tracks a requisition for detail/edit views.
func (s *RequisitionSlice) Select(r models.Requisition) {
	s.store.mu.Lock()
	sel := r
	s.selected = &sel
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceRequisitions, snap)
}

// ClearSelection drops the tracked requisition.
func (s *RequisitionSlice) ClearSelection() {
	s.store.mu.Lock()
	s.selected = nil
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceRequisitions, snap)
}

func (s *RequisitionSlice) snapshotLocked() RequisitionSnapshot {
	snap := RequisitionSnapshot{Requisitions: copyRequisitions(s.items)}
	if s.selected != nil {
		sel := *s.selected
		snap.Selected = &sel
	}
	return snap
}

// Restore applies a persisted snapshot.
func (s *RequisitionSlice) Restore(snap RequisitionSnapshot) {
	s.store.mu.Lock()
	s.items = snap.Requisitions
	s.selected = snap.Selected
	s.store.mu.Unlock()
}

func copyRequisitions(items []models.Requisition) []models.Requisition {
	out := make([]models.Requisition, len(items))
	copy(out, items)
	return out
}
