package models

import (
	"path/filepath"
	"strings"
	"time"
)

type UploadStatus string

const (
	UploadStatusUploading UploadStatus = "uploading"
	UploadStatusCompleted UploadStatus = "completed"
	UploadStatusError     UploadStatus = "error"
)

// UploadProgress is the per-file progress record shown while a transfer is
// in flight. Keyed by file name within one upload session.
type UploadProgress struct {
	FileName string       `json:"file_name"`
	Progress int          `json:"progress"`
	Status   UploadStatus `json:"status"`
}

type ResumeStatus string

const (
	ResumeStatusUploaded   ResumeStatus = "uploaded"
	ResumeStatusProcessing ResumeStatus = "processing"
	ResumeStatusMatched    ResumeStatus = "matched"
)

// Resume is an uploaded resume file as tracked by the resume library.
type Resume struct {
	ID         string       `json:"id"`
	FileName   string       `json:"file_name"`
	FileSize   int64        `json:"file_size"`
	UploadDate time.Time    `json:"upload_date"`
	MatchScore float64      `json:"match_score"`
	Status     ResumeStatus `json:"status"`
}

// Analysis is the result of matching one candidate resume against one
// requisition. IsMatch vocabulary ("match", "partial", "no-match") is owned
// by the remote system and stored verbatim.
type Analysis struct {
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
	CreatedAt         time.Time      `json:"created_at"`
}

// AnalysisSummary is the server-computed aggregate for one requisition.
// Cached as-is; it need not equal a live recomputation from the cached
// items (the server is authoritative).
type AnalysisSummary struct {
	TotalCandidates        int     `json:"total_candidates"`
	Matches                int     `json:"matches"`
	PartialMatches         int     `json:"partial_matches"`
	NotMatches             int     `json:"not_matches"`
	AverageMatchPercentage float64 `json:"average_match_percentage"`
}

// BulkAnalysisResult is the response of a bulk analyze call: the aggregate
// counters plus the full candidate set for the requisition.
type BulkAnalysisResult struct {
	TotalCandidates int        `json:"total_candidates"`
	Matches         int        `json:"matches"`
	PartialMatches  int        `json:"partial_matches"`
	NotMatches      int        `json:"not_matches"`
	Candidates      []Analysis `json:"candidates"`
}

// DeriveCandidateName falls back to the file name with its extension
// stripped when the caller did not supply an explicit candidate name.
func DeriveCandidateName(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
