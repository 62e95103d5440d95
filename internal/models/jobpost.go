package models

import (
	"strings"
	"time"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusExpired   PostStatus = "expired"
)

// Portal identifiers for the publish catalog. Advisory only: publish
// accepts arbitrary identifier strings, the catalog just lists the boards
// the UI offers by default.
const (
	PortalLinkedIn     = "linkedin"
	PortalIndeed       = "indeed"
	PortalGlassdoor    = "glassdoor"
	PortalMonster      = "monster"
	PortalZipRecruiter = "ziprecruiter"
)

// PortalCatalog returns the default set of publishable job boards.
func PortalCatalog() []string {
	return []string{PortalLinkedIn, PortalIndeed, PortalGlassdoor, PortalMonster, PortalZipRecruiter}
}

// JobPost is a publishable artifact derived from a requisition, with its
// own lifecycle and external-portal distribution.
type JobPost struct {
	ID               int64             `json:"id"`
	RequisitionID    int64             `json:"requisition_id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Location         string            `json:"location"`
	Experience       int               `json:"experience_required"`
	Skills           []string          `json:"skills_required"`
	SalaryRangeMin   float64           `json:"salary_range_min"`
	SalaryRangeMax   float64           `json:"salary_range_max"`
	EmploymentType   EmploymentType    `json:"employment_type"`
	Status           PostStatus        `json:"status"`
	PublishedPortals []string          `json:"published_portals"`
	ExternalJobIDs   map[string]string `json:"external_job_ids"`
	CreatedBy        int64             `json:"created_by"`
	CreatedAt        time.Time         `json:"created_at"`
	PublishedAt      time.Time         `json:"published_at"`
	ExpiresAt        time.Time         `json:"expires_at"`
}

// IsExpiredByDate reports whether the post's expiry window has passed at
// the given instant. This is a presentational hint: the authoritative
// lifecycle signal is Status, and the two may disagree.
func IsExpiredByDate(p JobPost, now time.Time) bool {
	return !p.ExpiresAt.IsZero() && p.ExpiresAt.Before(now)
}

// UpdateJobPostData is a sparse patch for a job post. Nil fields are left
// untouched. Skills arrive from the UI as a single delimited string and are
// normalized with SplitSkills before hitting the wire.
type UpdateJobPostData struct {
	Title          *string         `json:"title,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Location       *string         `json:"location,omitempty"`
	Experience     *int            `json:"experience_required,omitempty"`
	SkillsRaw      *string         `json:"-"`
	SalaryRangeMin *float64        `json:"salary_range_min,omitempty"`
	SalaryRangeMax *float64        `json:"salary_range_max,omitempty"`
	EmploymentType *EmploymentType `json:"employment_type,omitempty"`
	Status         *PostStatus     `json:"status,omitempty"`
}

// GenerateDescriptionData carries the job attributes the server-side AI
// needs to draft a description from scratch.
type GenerateDescriptionData struct {
	Title            string         `json:"title"`
	Location         string         `json:"location"`
	Experience       int            `json:"experience_required"`
	Skills           []string       `json:"skills_required"`
	Responsibilities string         `json:"responsibilities,omitempty"`
	Qualifications   string         `json:"qualifications,omitempty"`
	SalaryRangeMin   float64        `json:"salary_range_min,omitempty"`
	SalaryRangeMax   float64        `json:"salary_range_max,omitempty"`
	EmploymentType   EmploymentType `json:"employment_type,omitempty"`
}

// SplitSkills turns a comma-delimited skill string into a clean list:
// entries are trimmed and empties dropped. The wire contract wants a list,
// so this normalization belongs to the core, not the UI.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
