package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hirestack/recruit-core/internal/models"
)

// ProgressFunc receives the aggregate transfer percentage (0–100) of one
// multipart upload. A bulk call is a single HTTP request, so every file in
// the batch shares the same percentage.
type ProgressFunc func(percent int)

// ResumeFile is one resume to be uploaded or analyzed.
type ResumeFile struct {
	Name string
	Data []byte
}

// analysisWire mirrors one analysis result on the wire.
type analysisWire struct {
	ID                int64          `json:"id"`
	RequisitionID     int64          `json:"requisition_id"`
	CandidateName     string         `json:"candidate_name"`
	ResumeFilename    string         `json:"resume_filename"`
	MatchPercentage   float64        `json:"match_percentage"`
	ConfidenceScore   float64        `json:"confidence_score"`
	IsMatch           string         `json:"is_match"`
	SkillsMatch       map[string]any `json:"skills_match"`
	MissingSkills     []string       `json:"missing_skills"`
	ExperienceMatch   bool           `json:"experience_match"`
	GapsAnalysis      string         `json:"gaps_analysis"`
	SuitabilityRating string         `json:"suitability_rating"`
	AnalysisDetails   map[string]any `json:"analysis_details"`
	CreatedAt         string         `json:"created_at"`
}

type bulkAnalysisWire struct {
	TotalCandidates int            `json:"total_candidates"`
	Matches         int            `json:"matches"`
	PartialMatches  int            `json:"partial_matches"`
	NotMatches      int            `json:"not_matches"`
	Candidates      []analysisWire `json:"candidates"`
}

type summaryWire struct {
	TotalCandidates        int     `json:"total_candidates"`
	Matches                int     `json:"matches"`
	PartialMatches         int     `json:"partial_matches"`
	NotMatches             int     `json:"not_matches"`
	AverageMatchPercentage float64 `json:"average_match_percentage"`
}

type resumeWire struct {
	ID         string  `json:"id"`
	FileName   string  `json:"fileName"`
	FileSize   int64   `json:"fileSize"`
	UploadDate string  `json:"uploadDate"`
	MatchScore float64 `json:"matchScore"`
	Status     string  `json:"status"`
}

func normalizeAnalysis(w analysisWire) models.Analysis {
	a := models.Analysis{
		ID:                w.ID,
		RequisitionID:     w.RequisitionID,
		CandidateName:     w.CandidateName,
		ResumeFilename:    w.ResumeFilename,
		MatchPercentage:   w.MatchPercentage,
		ConfidenceScore:   w.ConfidenceScore,
		IsMatch:           w.IsMatch,
		SkillsMatch:       w.SkillsMatch,
		MissingSkills:     w.MissingSkills,
		ExperienceMatch:   w.ExperienceMatch,
		GapsAnalysis:      w.GapsAnalysis,
		SuitabilityRating: w.SuitabilityRating,
		AnalysisDetails:   w.AnalysisDetails,
		CreatedAt:         parseWireTime(w.CreatedAt),
	}
	if a.SkillsMatch == nil {
		a.SkillsMatch = map[string]any{}
	}
	if a.MissingSkills == nil {
		a.MissingSkills = []string{}
	}
	if a.AnalysisDetails == nil {
		a.AnalysisDetails = map[string]any{}
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	return a
}

func normalizeResume(w resumeWire) models.Resume {
	r := models.Resume{
		ID:         w.ID,
		FileName:   w.FileName,
		FileSize:   w.FileSize,
		MatchScore: w.MatchScore,
		Status:     models.ResumeStatus(w.Status),
	}
	if r.Status == "" {
		r.Status = models.ResumeStatusUploaded
	}
	r.UploadDate = time.Now()
	if t, err := time.Parse(time.RFC3339, w.UploadDate); err == nil {
		r.UploadDate = t
	}
	return r
}

// progressReader reports the cumulative percentage of a fixed-size body as
// it is consumed by the HTTP transport.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	report ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.report != nil && p.total > 0 {
		p.read += int64(n)
		percent := int(p.read * 100 / p.total)
		if percent > 100 {
			percent = 100
		}
		p.report(percent)
	}
	return n, err
}

// postMultipart builds and sends a multipart form, streaming the encoded
// body through a progressReader so callers can observe the transfer.
func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, fileField string, files []ResumeFile, progress ProgressFunc, out any, fallback string) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(fileField, f.Name)
		if err != nil {
			return fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("failed to write form file: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	body := &progressReader{r: &buf, total: int64(buf.Len()), report: progress}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.ContentLength = body.total
	return c.send(req, out, fallback)
}

// AnalyzeSingle submits one resume for analysis against a requisition.
func (c *Client) AnalyzeSingle(ctx context.Context, requisitionID int64, file ResumeFile, candidateName string, progress ProgressFunc) (models.Analysis, error) {
	fields := map[string]string{
		"requisition_id": strconv.FormatInt(requisitionID, 10),
		"candidate_name": candidateName,
	}
	var w analysisWire
	err := c.postMultipart(ctx, "/resume-analysis/analyze", fields, "resume_file",
		[]ResumeFile{file}, progress, &w, "Failed to analyze resume")
	if err != nil {
		return models.Analysis{}, err
	}
	return normalizeAnalysis(w), nil
}

// AnalyzeBulk submits a batch of resumes in one request. candidateNames
// must already be resolved to the same length as files; they travel
// comma-joined because that is what the endpoint expects.
func (c *Client) AnalyzeBulk(ctx context.Context, requisitionID int64, files []ResumeFile, candidateNames []string, progress ProgressFunc) (models.BulkAnalysisResult, error) {
	fields := map[string]string{
		"requisition_id":  strconv.FormatInt(requisitionID, 10),
		"candidate_names": strings.Join(candidateNames, ","),
	}
	var w bulkAnalysisWire
	err := c.postMultipart(ctx, "/resume-analysis/analyze-bulk", fields, "resume_files",
		files, progress, &w, "Failed to analyze resumes")
	if err != nil {
		return models.BulkAnalysisResult{}, err
	}
	result := models.BulkAnalysisResult{
		TotalCandidates: w.TotalCandidates,
		Matches:         w.Matches,
		PartialMatches:  w.PartialMatches,
		NotMatches:      w.NotMatches,
		Candidates:      make([]models.Analysis, 0, len(w.Candidates)),
	}
	for _, cw := range w.Candidates {
		result.Candidates = append(result.Candidates, normalizeAnalysis(cw))
	}
	return result, nil
}

// ListAnalyses fetches every cached analysis for a requisition.
func (c *Client) ListAnalyses(ctx context.Context, requisitionID int64) ([]models.Analysis, error) {
	var wires []analysisWire
	path := fmt.Sprintf("/resume-analysis/requisition/%d", requisitionID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &wires, "Failed to fetch analyses"); err != nil {
		return nil, err
	}
	items := make([]models.Analysis, 0, len(wires))
	for _, w := range wires {
		items = append(items, normalizeAnalysis(w))
	}
	return items, nil
}

// GetAnalysis fetches a single analysis by id.
func (c *Client) GetAnalysis(ctx context.Context, id int64) (models.Analysis, error) {
	var w analysisWire
	path := fmt.Sprintf("/resume-analysis/analysis/%d", id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &w, "Failed to fetch analysis"); err != nil {
		return models.Analysis{}, err
	}
	return normalizeAnalysis(w), nil
}

// DeleteAnalysis removes one analysis by id.
func (c *Client) DeleteAnalysis(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/resume-analysis/analysis/%d", id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, "Failed to delete analysis")
}

// GetAnalysisSummary fetches the server-computed aggregate for a
// requisition.
func (c *Client) GetAnalysisSummary(ctx context.Context, requisitionID int64) (models.AnalysisSummary, error) {
	var w summaryWire
	path := fmt.Sprintf("/resume-analysis/summary/%d", requisitionID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &w, "Failed to fetch summary"); err != nil {
		return models.AnalysisSummary{}, err
	}
	return models.AnalysisSummary(w), nil
}

// UploadResume uploads one resume file into the resume library.
func (c *Client) UploadResume(ctx context.Context, file ResumeFile, progress ProgressFunc) (models.Resume, error) {
	var w resumeWire
	err := c.postMultipart(ctx, "/resumes/upload", nil, "resume",
		[]ResumeFile{file}, progress, &w, "Failed to upload resumes")
	if err != nil {
		return models.Resume{}, err
	}
	return normalizeResume(w), nil
}

// MatchedResumes fetches the resumes already matched to a requisition.
func (c *Client) MatchedResumes(ctx context.Context, requisitionID string) ([]models.Resume, error) {
	var wires []resumeWire
	path := "/requisition/" + requisitionID + "/matched-resumes"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &wires, "Failed to fetch matched resumes"); err != nil {
		return nil, err
	}
	resumes := make([]models.Resume, 0, len(wires))
	for _, w := range wires {
		resumes = append(resumes, normalizeResume(w))
	}
	return resumes, nil
}
