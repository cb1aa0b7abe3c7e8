package dto

import (
	"time"

	"github.com/spec-kit/live-commerce/internal/domain"
)

// StreamCreateRequest payload for starting a broadcast.
type StreamCreateRequest struct {
	CallID             string `json:"callId" validate:"required"`
	Title              string `json:"title" validate:"required"`
	IsRecordingEnabled bool   `json:"isRecordingEnabled"`
}

// RecordingResponse describes an uploaded recording.
type RecordingResponse struct {
	FileName        string    `json:"fileName"`
	DurationSeconds int       `json:"duration"`
	FileSizeBytes   int64     `json:"fileSize"`
	RecordedAt      time.Time `json:"recordedAt"`
}

// StreamResponse is the public session representation.
type StreamResponse struct {
	ID                 string              `json:"id"`
	CallID             string              `json:"callId"`
	HostID             string              `json:"hostId"`
	Title              string              `json:"title"`
	Status             domain.StreamStatus `json:"status"`
	IsRecordingEnabled bool                `json:"isRecordingEnabled"`
	Recording          *RecordingResponse  `json:"recording,omitempty"`
	ViewerCount        *int64              `json:"viewerCount,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
	EndedAt            *time.Time          `json:"endedAt,omitempty"`
}

// NewStreamResponse maps the domain model.
func NewStreamResponse(s *domain.Stream) StreamResponse {
	resp := StreamResponse{
		ID:                 s.ID,
		CallID:             s.CallID,
		HostID:             s.HostID,
		Title:              s.Title,
		Status:             s.Status,
		IsRecordingEnabled: s.IsRecordingEnabled,
		CreatedAt:          s.CreatedAt,
		EndedAt:            s.EndedAt,
	}
	if s.Recording != nil {
		resp.Recording = &RecordingResponse{
			FileName:        s.Recording.FileName,
			DurationSeconds: s.Recording.DurationSeconds,
			FileSizeBytes:   s.Recording.FileSizeBytes,
			RecordedAt:      s.Recording.RecordedAt,
		}
	}
	return resp
}

// NewStreamResponses maps a slice.
func NewStreamResponses(streams []domain.Stream) []StreamResponse {
	out := make([]StreamResponse, 0, len(streams))
	for i := range streams {
		out = append(out, NewStreamResponse(&streams[i]))
	}
	return out
}

// ViewerTokenResponse carries the provider token for the caller.
type ViewerTokenResponse struct {
	Token  string `json:"token"`
	APIKey string `json:"apiKey"`
}

// SellerStatsResponse is the seller dashboard envelope.
type SellerStatsResponse struct {
	TotalStreams    int64 `json:"totalStreams"`
	ActiveStreams   int64 `json:"activeStreams"`
	RecordedStreams int64 `json:"recordedStreams"`
	TotalProducts   int64 `json:"totalProducts"`
}

// RecordingsSummaryResponse aggregates a seller's recordings.
type RecordingsSummaryResponse struct {
	TotalRecordings int64   `json:"totalRecordings"`
	TotalDuration   int64   `json:"totalDuration"`
	TotalSize       int64   `json:"totalSize"`
	AverageDuration float64 `json:"averageDuration"`
}
