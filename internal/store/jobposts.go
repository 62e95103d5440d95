package store

import (
	"context"

	"hirestack/recruit-core/internal/models"
)

// JobPostSlice holds the job-post collection, the selected post, and the
// publish/regenerate lifecycle around them.
type JobPostSlice struct {
	opState
	gw JobPostGateway

	items    []models.JobPost
	selected *models.JobPost
}

// JobPostState is a read-only snapshot of the job-post slice.
type JobPostState struct {
	JobPosts  []models.JobPost
	Selected  *models.JobPost
	IsLoading bool
	Error     string
}

// JobPostSnapshot is the persisted plain-data form.
type JobPostSnapshot struct {
	JobPosts []models.JobPost `json:"job_posts"`
	Selected *models.JobPost  `json:"selected"`
}

// State returns a copy of the current job-post state.
func (s *JobPostSlice) State() JobPostState {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	st := JobPostState{
		JobPosts:  copyJobPosts(s.items),
		IsLoading: s.isLoading,
		Error:     s.errMsg,
	}
	if s.selected != nil {
		sel := *s.selected
		st.Selected = &sel
	}
	return st
}

// Create derives a post from a requisition with the given expiry window
// and prepends the confirmed post to the collection.
func (s *JobPostSlice) Create(ctx context.Context, requisitionID int64, expiresInDays int) (models.JobPost, error) {
	s.begin()
	post, err := s.gw.CreateJobPost(ctx, requisitionID, expiresInDays)
	if err != nil {
		return models.JobPost{}, s.fail(err)
	}

	s.store.mu.Lock()
	s.isLoading = false
	s.items = append([]models.JobPost{post}, s.items...)
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceJobPosts, snap)
	return post, nil
}

// Fetch replaces the collection with a page of posts.
func (s *JobPostSlice) Fetch(ctx context.Context, skip, limit int) ([]models.JobPost, error) {
	s.begin()
	items, err := s.gw.ListJobPosts(ctx, skip, limit)
	if err != nil {
		return nil, s.fail(err)
	}

	s.store.mu.Lock()
	s.isLoading = false
	s.items = items
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceJobPosts, snap)
	return copyJobPosts(items), nil
}

// FetchByID fetches one post and makes it the selected entry.
func (s *JobPostSlice) FetchByID(ctx context.Context, id int64) (models.JobPost, error) {
	if id == 0 {
		return models.JobPost{}, ErrNoID
	}
	s.begin()
	post, err := s.gw.GetJobPost(ctx, id)
	if err != nil {
		return models.JobPost{}, s.fail(err)
	}

	s.store.mu.Lock()
	s.isLoading = false
	sel := post
	s.selected = &sel
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceJobPosts, snap)
	return post, nil
}

// Update applies a sparse patch and replaces the matching collection and
// selection entries with the confirmed post.
func (s *JobPostSlice) Update(ctx context.Context, id int64, data models.UpdateJobPostData) (models.JobPost, error) {
	if id == 0 {
		return models.JobPost{}, ErrNoID
	}
	s.begin()
	post, err := s.gw.UpdateJobPost(ctx, id, data)
	if err != nil {
		return models.JobPost{}, s.fail(err)
	}

	s.store.mu.Lock()
	s.isLoading = false
	for i := range s.items {
		if s.items[i].ID == post.ID {
			s.items[i] = post
			break
		}
	}
	if s.selected != nil && s.selected.ID == post.ID {
		sel := post
		s.selected = &sel
	}
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceJobPosts, snap)
	return post, nil
}

// Delete removes the matching post and clears the selection when it
// points at the deleted post.
func (s *JobPostSlice) Delete(ctx context.Context, id int64) error {
	if id == 0 {
		return ErrNoID
	}
	s.begin()
	if err := s.gw.DeleteJobPost(ctx, id); err != nil {
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

	s.store.publish(SliceJobPosts, snap)
	return nil
}

// Publish distributes a post to the given portals. On success the local
// transition is unconditional: status forced to published and the portal
// set merged into the entry, without waiting for the server to echo the
// post back. A rejected publish leaves the post exactly as it was.
func (s *JobPostSlice) Publish(ctx context.Context, id int64, portals []string) error {
	if id == 0 {
		return ErrNoID
	}
	s.begin()
	if err := s.gw.PublishJobPost(ctx, id, portals); err != nil {
		return s.fail(err)
	}

	s.store.mu.Lock()
	s.isLoading = false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = models.PostStatusPublished
			s.items[i].PublishedPortals = mergePortals(s.items[i].PublishedPortals, portals)
		}
	}
	if s.selected != nil && s.selected.ID == id {
		s.selected.Status = models.PostStatusPublished
		s.selected.PublishedPortals = mergePortals(s.selected.PublishedPortals, portals)
	}
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceJobPosts, snap)
	return nil
}

// RegenerateDescription overwrites only the description of the matching
// post (collection and selection alike); no other field changes.
func (s *JobPostSlice) RegenerateDescription(ctx context.Context, id int64) (string, error) {
	if id == 0 {
		return "", ErrNoID
	}
	s.begin()
	description, err := s.gw.RegenerateDescription(ctx, id)
	if err != nil {
		return "", s.fail(err)
	}

	s.store.mu.Lock()
	s.isLoading = false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Description = description
		}
	}
	if s.selected != nil && s.selected.ID == id {
		s.selected.Description = description
	}
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceJobPosts, snap)
	return description, nil
}

// GenerateDescription drafts a description from raw job attributes. It
// resolves with the generated text and mutates no post state.
func (s *JobPostSlice) GenerateDescription(ctx context.Context, data models.GenerateDescriptionData) (string, error) {
	s.begin()
	description, err := s.gw.GenerateDescription(ctx, data)
	if err != nil {
		return "", s.fail(err)
	}

	s.store.mu.Lock()
	s.isLoading = false
	s.store.mu.Unlock()
	return description, nil
}

// Select tracks a post for detail/edit views.
func (s *JobPostSlice) Select(p models.JobPost) {
	s.store.mu.Lock()
	sel := p
	s.selected = &sel
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceJobPosts, snap)
}

// ClearSelection drops the tracked post.
func (s *JobPostSlice) ClearSelection() {
	s.store.mu.Lock()
	s.selected = nil
	snap := s.snapshotLocked()
	s.store.mu.Unlock()

	s.store.publish(SliceJobPosts, snap)
}

func (s *JobPostSlice) snapshotLocked() JobPostSnapshot {
	snap := JobPostSnapshot{JobPosts: copyJobPosts(s.items)}
	if s.selected != nil {
		sel := *s.selected
		snap.Selected = &sel
	}
	return snap
}

// Restore applies a persisted snapshot.
func (s *JobPostSlice) Restore(snap JobPostSnapshot) {
	s.store.mu.Lock()
	s.items = snap.JobPosts
	s.selected = snap.Selected
	s.store.mu.Unlock()
}

// mergePortals unions the newly published portals into the existing set,
// keeping order and skipping duplicates.
func mergePortals(current, added []string) []string {
	merged := make([]string, 0, len(current)+len(added))
	merged = append(merged, current...)
	for _, p := range added {
		seen := false
		for _, c := range merged {
			if c == p {
				seen = true
				break
			}
		}
		if !seen {
			merged = append(merged, p)
		}
	}
	return merged
}

func copyJobPosts(items []models.JobPost) []models.JobPost {
	out := make([]models.JobPost, len(items))
	copy(out, items)
	return out
}
