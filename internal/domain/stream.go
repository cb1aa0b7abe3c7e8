package domain

import "time"

// StreamStatus represents lifecycle states for a livestream session.
type StreamStatus string

const (
	StreamStatusActive StreamStatus = "active"
	StreamStatusEnded  StreamStatus = "ended"
)

// Recording holds metadata for an uploaded session recording. The backing
// file is write-once; only external administrative action removes it.
type Recording struct {
	FileName        string
	FilePath        string
	DurationSeconds int
	FileSizeBytes   int64
	RecordedAt      time.Time
}

// Stream is a livestream session keyed by the video-call provider's call id.
type Stream struct {
	ID                 string
	CallID             string
	HostID             string
	Title              string
	Status             StreamStatus
	IsRecordingEnabled bool
	Recording          *Recording
	CreatedAt          time.Time
	EndedAt            *time.Time
}

// HasRecording reports whether an uploaded recording is attached.
func (s *Stream) HasRecording() bool {
	return s.Recording != nil && s.Recording.FileName != ""
}
