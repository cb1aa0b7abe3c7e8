package events

import (
	"time"

	"github.com/spec-kit/live-commerce/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStreamStarted     EventType = "stream_started"
	EventStreamEnded       EventType = "stream_ended"
	EventRecordingUploaded EventType = "recording_uploaded"
	EventRoleChanged       EventType = "role_changed"
	EventUserDeleted       EventType = "user_deleted"
	EventProductCreated    EventType = "product_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StreamStartedPayload payload.
type StreamStartedPayload struct {
	CallID             string `json:"call_id"`
	Title              string `json:"title"`
	IsRecordingEnabled bool   `json:"is_recording_enabled"`
}

// StreamEndedPayload payload.
type StreamEndedPayload struct {
	CallID  string     `json:"call_id"`
	EndedAt *time.Time `json:"ended_at,omitempty"`
}

// RecordingUploadedPayload payload.
type RecordingUploadedPayload struct {
	CallID        string `json:"call_id"`
	FileName      string `json:"file_name"`
	FileSizeBytes int64  `json:"file_size_bytes"`
}

// RoleChangedPayload payload.
type RoleChangedPayload struct {
	OldRole domain.Role `json:"old_role"`
	NewRole domain.Role `json:"new_role"`
}

// ProductCreatedPayload payload.
type ProductCreatedPayload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
