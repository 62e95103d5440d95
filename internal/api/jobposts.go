package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hirestack/recruit-core/internal/models"
)

// jobPostWire mirrors a job post as returned by the backend.
type jobPostWire struct {
	ID               int64             `json:"id"`
	RequisitionID    int64             `json:"requisition_id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Location         string            `json:"location"`
	ExperienceReq    int               `json:"experience_required"`
	SkillsRequired   []string          `json:"skills_required"`
	SalaryRangeMin   float64           `json:"salary_range_min"`
	SalaryRangeMax   float64           `json:"salary_range_max"`
	EmploymentType   string            `json:"employment_type"`
	Status           string            `json:"status"`
	PublishedPortals []string          `json:"published_portals"`
	ExternalJobIDs   map[string]string `json:"external_job_ids"`
	CreatedBy        int64             `json:"created_by"`
	CreatedAt        string            `json:"created_at"`
	PublishedAt      string            `json:"published_at"`
	ExpiresAt        string            `json:"expires_at"`
}

type createJobPostRequest struct {
	RequisitionID int64 `json:"requisition_id"`
	ExpiresInDays int   `json:"expires_in_days"`
}

type publishJobPostRequest struct {
	Portals []string `json:"portals"`
}

func parseWireTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func normalizeJobPost(w jobPostWire) models.JobPost {
	p := models.JobPost{
		ID:               w.ID,
		RequisitionID:    w.RequisitionID,
		Title:            w.Title,
		Description:      w.Description,
		Location:         w.Location,
		Experience:       w.ExperienceReq,
		Skills:           w.SkillsRequired,
		SalaryRangeMin:   w.SalaryRangeMin,
		SalaryRangeMax:   w.SalaryRangeMax,
		EmploymentType:   models.EmploymentType(w.EmploymentType),
		Status:           models.PostStatus(w.Status),
		PublishedPortals: w.PublishedPortals,
		ExternalJobIDs:   w.ExternalJobIDs,
		CreatedBy:        w.CreatedBy,
		CreatedAt:        parseWireTime(w.CreatedAt),
		PublishedAt:      parseWireTime(w.PublishedAt),
		ExpiresAt:        parseWireTime(w.ExpiresAt),
	}
	if p.Status == "" {
		p.Status = models.PostStatusDraft
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.PublishedPortals == nil {
		p.PublishedPortals = []string{}
	}
	if p.ExternalJobIDs == nil {
		p.ExternalJobIDs = map[string]string{}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return p
}

// CreateJobPost derives a new post from a requisition with the given
// expiry window in days.
func (c *Client) CreateJobPost(ctx context.Context, requisitionID int64, expiresInDays int) (models.JobPost, error) {
	var w jobPostWire
	err := c.doJSON(ctx, http.MethodPost, "/job-post/",
		createJobPostRequest{RequisitionID: requisitionID, ExpiresInDays: expiresInDays},
		&w, "Failed to create job post")
	if err != nil {
		return models.JobPost{}, err
	}
	return normalizeJobPost(w), nil
}

// ListJobPosts fetches a page of job posts.
func (c *Client) ListJobPosts(ctx context.Context, skip, limit int) ([]models.JobPost, error) {
	var wires []jobPostWire
	path := fmt.Sprintf("/job-post/?skip=%d&limit=%d", skip, limit)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &wires, "Failed to fetch job posts"); err != nil {
		return nil, err
	}
	posts := make([]models.JobPost, 0, len(wires))
	for _, w := range wires {
		posts = append(posts, normalizeJobPost(w))
	}
	return posts, nil
}

// GetJobPost fetches a single job post by id.
func (c *Client) GetJobPost(ctx context.Context, id int64) (models.JobPost, error) {
	var w jobPostWire
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/job-post/%d", id), nil, &w, "Failed to fetch job post"); err != nil {
		return models.JobPost{}, err
	}
	return normalizeJobPost(w), nil
}

// UpdateJobPost applies a sparse patch. The raw skills string, if present,
// is normalized into a list here because the wire contract wants a list.
func (c *Client) UpdateJobPost(ctx context.Context, id int64, data models.UpdateJobPostData) (models.JobPost, error) {
	body := map[string]any{}
	raw, err := json.Marshal(data)
	if err != nil {
		return models.JobPost{}, fmt.Errorf("failed to encode patch: %w", err)
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return models.JobPost{}, fmt.Errorf("failed to encode patch: %w", err)
	}
	if data.SkillsRaw != nil {
		body["skills_required"] = models.SplitSkills(*data.SkillsRaw)
	}

	var w jobPostWire
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/job-post/%d", id), body, &w, "Failed to update job post"); err != nil {
		return models.JobPost{}, err
	}
	return normalizeJobPost(w), nil
}

// DeleteJobPost removes a job post by id.
func (c *Client) DeleteJobPost(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/job-post/%d", id), nil, nil, "Failed to delete job post")
}

// PublishJobPost distributes a post to the given portals. The response
// body is not relied upon; the store performs the local status transition
// on success.
func (c *Client) PublishJobPost(ctx context.Context, id int64, portals []string) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/job-post/%d/publish", id),
		publishJobPostRequest{Portals: portals}, nil, "Failed to publish job post")
}

// RegenerateDescription asks the server-side AI for a replacement
// description for an existing post.
func (c *Client) RegenerateDescription(ctx context.Context, id int64) (string, error) {
	var raw json.RawMessage
	err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/job-post/%d/regenerate-description", id),
		nil, &raw, "Failed to regenerate job description")
	if err != nil {
		return "", err
	}
	return decodeText(raw), nil
}

// GenerateDescription drafts a description from raw job attributes without
// touching any stored post.
func (c *Client) GenerateDescription(ctx context.Context, data models.GenerateDescriptionData) (string, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, "/job/generate", data, &raw, "Failed to generate job description"); err != nil {
		return "", err
	}
	return decodeText(raw), nil
}
