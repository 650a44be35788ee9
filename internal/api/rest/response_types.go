package rest

import (
	"time"

	domain "github.com/complianceworks/sanctions-screening-backend/internal/domain/screening"
	"github.com/complianceworks/sanctions-screening-backend/internal/domain/values"
	"github.com/complianceworks/sanctions-screening-backend/internal/service/screening"
)

// MatchResponse is one candidate in a screening response
type MatchResponse struct {
	EntityID       string             `json:"entity_id"`
	EntityName     string             `json:"entity_name"`
	EntityType     string             `json:"entity_type"`
	Source         string             `json:"source"`
	Programs       []string           `json:"programs,omitempty"`
	MatchedName    string             `json:"matched_name"`
	MatchedOnAlias bool               `json:"matched_on_alias"`
	Scores         map[string]float64 `json:"scores"`
	Confidence     values.Confidence  `json:"confidence"`
	Recommendation string             `json:"recommendation"`
	Flags          []string           `json:"flags,omitempty"`
}

// ScreenResponse is the body returned for one screened subject
type ScreenResponse struct {
	ScreeningID      string          `json:"screening_id"`
	ScreeningDate    time.Time       `json:"screening_date"`
	IndexVersion     string          `json:"index_version"`
	IsHit            bool            `json:"is_hit"`
	HitCount         int             `json:"hit_count"`
	Matches          []MatchResponse `json:"matches"`
	Recommendation   string          `json:"recommendation"`
	Error            *RecordError    `json:"error,omitempty"`
	ProcessingTimeMS float64         `json:"processing_time_ms"`
	AlgorithmVersion string          `json:"algorithm_version"`
}

type RecordError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BulkScreenResponse is the body of POST /api/v1/screen/bulk
type BulkScreenResponse struct {
	ReportID         string           `json:"report_id"`
	TotalProcessed   int              `json:"total_processed"`
	Hits             int              `json:"hits"`
	HitRate          float64          `json:"hit_rate"`
	Errored          int              `json:"errored"`
	Results          []ScreenResponse `json:"results"`
	ProcessingTimeMS float64          `json:"processing_time_ms"`
	AlgorithmVersion string           `json:"algorithm_version"`
}

// HealthResponse is the body of GET /api/v1/health
type HealthResponse struct {
	Status        string         `json:"status"`
	Version       string         `json:"version"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	IndexLoaded   bool           `json:"index_loaded"`
	IndexVersion  string         `json:"index_version,omitempty"`
	IndexBuiltAt  *time.Time     `json:"index_built_at,omitempty"`
	Entities      map[string]int `json:"entities,omitempty"`
}

// ListsResponse is the body of GET /api/v1/lists
type ListsResponse struct {
	Sources []ListSourceInfo `json:"sources"`
}

type ListSourceInfo struct {
	Source      string `json:"source"`
	DisplayName string `json:"display_name"`
	Entities    int    `json:"entities"`
}

// RebuildResponse is the body of POST /api/v1/index/rebuild
type RebuildResponse struct {
	IndexVersion string         `json:"index_version"`
	Entities     int            `json:"entities"`
	BySource     map[string]int `json:"by_source"`
	BuiltAt      time.Time      `json:"built_at"`
}

func toScreenResponse(result *domain.Result, elapsed time.Duration) ScreenResponse {
	matches := make([]MatchResponse, 0, len(result.Matches))
	for _, m := range result.Matches {
		matches = append(matches, MatchResponse{
			EntityID:       m.Entity.ID,
			EntityName:     m.Entity.Name,
			EntityType:     m.Entity.Type.String(),
			Source:         m.Entity.Source.String(),
			Programs:       m.Entity.Programs,
			MatchedName:    m.MatchedName,
			MatchedOnAlias: m.MatchedOnAlias,
			Scores:         m.Scores,
			Confidence:     m.Confidence,
			Recommendation: m.Recommendation.String(),
			Flags:          m.Flags,
		})
	}

	resp := ScreenResponse{
		ScreeningID:      result.ScreeningID,
		ScreeningDate:    result.CreatedAt,
		IndexVersion:     result.IndexVersion,
		IsHit:            result.IsHit,
		HitCount:         result.HitCount,
		Matches:          matches,
		Recommendation:   result.Recommendation().String(),
		ProcessingTimeMS: float64(elapsed.Microseconds()) / 1000.0,
		AlgorithmVersion: screening.AlgorithmVersion,
	}
	if result.Error != nil {
		resp.Error = &RecordError{Code: result.Error.Code, Message: result.Error.Message}
	}
	return resp
}

func toBulkResponse(report *domain.BulkReport) BulkScreenResponse {
	results := make([]ScreenResponse, 0, len(report.Results))
	for _, r := range report.Results {
		results = append(results, toScreenResponse(r, 0))
	}
	return BulkScreenResponse{
		ReportID:         report.ReportID,
		TotalProcessed:   report.TotalProcessed,
		Hits:             report.Hits,
		HitRate:          report.HitRate,
		Errored:          report.Errored,
		Results:          results,
		ProcessingTimeMS: float64(report.Duration.Microseconds()) / 1000.0,
		AlgorithmVersion: screening.AlgorithmVersion,
	}
}
