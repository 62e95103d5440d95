package models

import "time"

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "Full-time"
	EmploymentPartTime   EmploymentType = "Part-time"
	EmploymentContract   EmploymentType = "Contract"
	EmploymentInternship EmploymentType = "Internship"
	EmploymentFreelance  EmploymentType = "Freelance"
)

// Requisition is an internal record of a role to be filled.
type Requisition struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Department       string         `json:"department"`
	Location         string         `json:"location"`
	Experience       int            `json:"experience"`
	Skills           []string       `json:"skills"`
	Responsibilities string         `json:"responsibilities"`
	Qualifications   string         `json:"qualifications"`
	SalaryRangeMin   float64        `json:"salary_range_min"`
	SalaryRangeMax   float64        `json:"salary_range_max"`
	EmploymentType   EmploymentType `json:"employment_type"`
	DatePosted       time.Time      `json:"date_posted"`
}

// CreateRequisitionData is the validated payload for create and update
// intents. Callers pre-validate (required fields, non-empty skill set);
// the store trusts this input and lets the server reject the rest.
type CreateRequisitionData struct {
	Title            string         `json:"title"`
	Department       string         `json:"department"`
	Location         string         `json:"location"`
	Experience       int            `json:"experience_required"`
	Skills           []string       `json:"skills_required"`
	Responsibilities string         `json:"responsibilities"`
	Qualifications   string         `json:"qualifications"`
	SalaryRangeMin   float64        `json:"salary_range_min"`
	SalaryRangeMax   float64        `json:"salary_range_max"`
	EmploymentType   EmploymentType `json:"employment_type"`
}

// AddSkill appends skill to list unless an identical entry is already
// present. Dedup happens here, at the point of addition; existing entries
// keep their order.
func AddSkill(list []string, skill string) []string {
	for _, s := range list {
		if s == skill {
			return list
		}
	}
	return append(list, skill)
}
