package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"hirestack/recruit-core/internal/models"
)

// requisitionWire mirrors a requisition as the backend returns it. Every
// field may be absent; normalizeRequisition applies the fallbacks.
type requisitionWire struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ExperienceReq    int      `json:"experience_required"`
	Location         string   `json:"location"`
	SkillsRequired   []string `json:"skills_required"`
	Responsibilities string   `json:"responsibilities"`
	Qualifications   string   `json:"qualifications"`
	SalaryRangeMin   float64  `json:"salary_range_min"`
	SalaryRangeMax   float64  `json:"salary_range_max"`
	EmploymentType   string   `json:"employment_type"`
	Department       string   `json:"department"`
	DatePosted       string   `json:"datePosted"`
}

// normalizeRequisition maps the wire shape onto the canonical entity with
// deterministic fallbacks, so the rest of the application never observes
// missing required fields. When sent is non-nil (create/update responses)
// the submitted payload wins over the generic fallbacks, and fallbackID is
// used for a missing id.
func normalizeRequisition(w requisitionWire, sent *models.CreateRequisitionData, fallbackID string) models.Requisition {
	r := models.Requisition{
		ID:               w.ID,
		Title:            w.Title,
		Description:      w.Description,
		Department:       w.Department,
		Location:         w.Location,
		Experience:       w.ExperienceReq,
		Skills:           w.SkillsRequired,
		Responsibilities: w.Responsibilities,
		Qualifications:   w.Qualifications,
		SalaryRangeMin:   w.SalaryRangeMin,
		SalaryRangeMax:   w.SalaryRangeMax,
		EmploymentType:   models.EmploymentType(w.EmploymentType),
	}

	if sent != nil {
		if r.Title == "" {
			r.Title = sent.Title
		}
		if r.Experience == 0 {
			r.Experience = sent.Experience
		}
		if r.Location == "" {
			r.Location = sent.Location
		}
		if len(r.Skills) == 0 {
			r.Skills = sent.Skills
		}
		if r.Department == "" {
			r.Department = sent.Department
		}
		if r.Responsibilities == "" {
			r.Responsibilities = sent.Responsibilities
		}
		if r.Qualifications == "" {
			r.Qualifications = sent.Qualifications
		}
		if r.SalaryRangeMin == 0 {
			r.SalaryRangeMin = sent.SalaryRangeMin
		}
		if r.SalaryRangeMax == 0 {
			r.SalaryRangeMax = sent.SalaryRangeMax
		}
		if r.EmploymentType == "" {
			r.EmploymentType = sent.EmploymentType
		}
	}

	if r.ID == "" {
		if fallbackID != "" {
			r.ID = fallbackID
		} else {
			r.ID = uuid.NewString()
		}
	}
	if r.Title == "" {
		r.Title = "Untitled Job"
	}
	if r.Location == "" {
		r.Location = "Location not specified"
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Description == "" {
		r.Description = fmt.Sprintf("%s\n\nQualifications:\n%s", r.Responsibilities, r.Qualifications)
	}

	r.DatePosted = time.Now()
	if t, err := time.Parse(time.RFC3339, w.DatePosted); err == nil {
		r.DatePosted = t
	}
	return r
}

// ListRequisitions fetches a page of requisitions. The default window
// (skip 0, limit 100) is wide enough to show "all" at this domain's scale.
func (c *Client) ListRequisitions(ctx context.Context, skip, limit int) ([]models.Requisition, error) {
	var wires []requisitionWire
	path := fmt.Sprintf("/requisition/?skip=%d&limit=%d", skip, limit)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &wires, "Failed to fetch jobs"); err != nil {
		return nil, err
	}
	reqs := make([]models.Requisition, 0, len(wires))
	for _, w := range wires {
		reqs = append(reqs, normalizeRequisition(w, nil, ""))
	}
	return reqs, nil
}

// GetRequisition fetches a single requisition by id.
func (c *Client) GetRequisition(ctx context.Context, id string) (models.Requisition, error) {
	var w requisitionWire
	if err := c.doJSON(ctx, http.MethodGet, "/requisition/"+id, nil, &w, "Failed to fetch job"); err != nil {
		return models.Requisition{}, err
	}
	return normalizeRequisition(w, nil, id), nil
}

// CreateRequisition posts a new requisition. The response is normalized
// with the submitted payload as the fallback source, so a sparse server
// echo still yields a complete entity.
func (c *Client) CreateRequisition(ctx context.Context, data models.CreateRequisitionData) (models.Requisition, error) {
	var w requisitionWire
	if err := c.doJSON(ctx, http.MethodPost, "/requisition/", data, &w, "Failed to create job"); err != nil {
		return models.Requisition{}, err
	}
	return normalizeRequisition(w, &data, ""), nil
}

// UpdateRequisition replaces the mutable fields of a requisition.
func (c *Client) UpdateRequisition(ctx context.Context, id string, data models.CreateRequisitionData) (models.Requisition, error) {
	var w requisitionWire
	if err := c.doJSON(ctx, http.MethodPut, "/requisition/"+id, data, &w, "Failed to update job"); err != nil {
		return models.Requisition{}, err
	}
	return normalizeRequisition(w, &data, id), nil
}

// DeleteRequisition removes a requisition by id.
func (c *Client) DeleteRequisition(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/requisition/"+id, nil, nil, "Failed to delete job")
}
