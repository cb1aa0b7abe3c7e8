package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/live-commerce/internal/auth"
	"github.com/spec-kit/live-commerce/internal/domain"
	"github.com/spec-kit/live-commerce/internal/events"
	"github.com/spec-kit/live-commerce/internal/media"
	"github.com/spec-kit/live-commerce/internal/persistence"
	"github.com/spec-kit/live-commerce/internal/repository"
	apperrors "github.com/spec-kit/live-commerce/pkg/util"
)

// RecordingUpload describes a received multipart video file already written
// to its destination path.
type RecordingUpload struct {
	FileName        string
	FilePath        string
	FileSizeBytes   int64
	DurationSeconds int
}

// StreamService coordinates livestream sessions, viewer tokens, viewer
// presence counters and recording uploads.
type StreamService struct {
	streams    repository.StreamRepository
	store      *media.Store
	videoToken *auth.VideoTokenProvider
	viewers    persistence.ViewerCounter
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewStreamService builds the service.
func NewStreamService(
	streams repository.StreamRepository,
	store *media.Store,
	videoToken *auth.VideoTokenProvider,
	viewers persistence.ViewerCounter,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *StreamService {
	return &StreamService{
		streams:    streams,
		store:      store,
		videoToken: videoToken,
		viewers:    viewers,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ViewerToken issues a provider token for the authenticated viewer.
func (s *StreamService) ViewerToken(userID string) (token, apiKey string, err error) {
	token, err = s.videoToken.CreateToken(userID)
	if err != nil {
		return "", "", err
	}
	return token, s.videoToken.APIKey(), nil
}

// CreateStream starts a new session for the host.
func (s *StreamService) CreateStream(ctx context.Context, hostID, callID, title string, recordingEnabled bool) (*domain.Stream, error) {
	stream := &domain.Stream{
		CallID:             callID,
		HostID:             hostID,
		Title:              title,
		Status:             domain.StreamStatusActive,
		IsRecordingEnabled: recordingEnabled,
	}
	if err := s.streams.Create(ctx, stream); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventStreamStarted,
		SubjectID: stream.CallID,
		ActorID:   hostID,
		Timestamp: time.Now(),
		Payload: events.StreamStartedPayload{
			CallID:             callID,
			Title:              title,
			IsRecordingEnabled: recordingEnabled,
		},
	})
	return stream, nil
}

// ListActive lists running sessions, newest first.
func (s *StreamService) ListActive(ctx context.Context) ([]domain.Stream, error) {
	return s.streams.ListActive(ctx)
}

// GetStream fetches a session by call id.
func (s *StreamService) GetStream(ctx context.Context, callID string) (*domain.Stream, error) {
	stream, err := s.streams.GetByCallID(ctx, callID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("stream", nil)
		}
		return nil, err
	}
	return stream, nil
}

// EndStream marks the host's session ended. A wrong host is reported as not
// found so the response does not reveal whether the call id exists.
func (s *StreamService) EndStream(ctx context.Context, hostID, callID string) (*domain.Stream, error) {
	endedAt := time.Now()
	stream, err := s.streams.End(ctx, callID, hostID, endedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("stream", nil)
		}
		return nil, err
	}

	if s.viewers != nil {
		if err := s.viewers.Clear(ctx, callID); err != nil {
			s.logger.Warn("failed to clear viewer counter", zap.String("call_id", callID), zap.Error(err))
		}
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventStreamEnded,
		SubjectID: callID,
		ActorID:   hostID,
		Timestamp: time.Now(),
		Payload:   events.StreamEndedPayload{CallID: callID, EndedAt: stream.EndedAt},
	})
	return stream, nil
}

// AttachRecording validates ownership and the recording flag, then persists
// the uploaded file's metadata and force-ends the session. The stored file is
// removed on every failure path.
func (s *StreamService) AttachRecording(ctx context.Context, hostID, callID string, upload RecordingUpload) (*domain.Recording, error) {
	stream, err := s.streams.GetByCallIDAndHost(ctx, callID, hostID)
	if err != nil {
		s.store.Remove(upload.FilePath)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("stream", nil)
		}
		return nil, err
	}

	if !stream.IsRecordingEnabled {
		s.store.Remove(upload.FilePath)
		return nil, apperrors.NewForbidden("Recording was not enabled for this stream")
	}

	rec := domain.Recording{
		FileName:        upload.FileName,
		FilePath:        upload.FilePath,
		DurationSeconds: upload.DurationSeconds,
		FileSizeBytes:   upload.FileSizeBytes,
		RecordedAt:      time.Now(),
	}
	if err := s.streams.SetRecording(ctx, callID, rec, time.Now()); err != nil {
		s.store.Remove(upload.FilePath)
		return nil, err
	}

	s.logger.Info("recording saved",
		zap.String("call_id", callID),
		zap.String("file", rec.FileName),
		zap.Int64("size_bytes", rec.FileSizeBytes))

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRecordingUploaded,
		SubjectID: callID,
		ActorID:   hostID,
		Timestamp: time.Now(),
		Payload: events.RecordingUploadedPayload{
			CallID:        callID,
			FileName:      rec.FileName,
			FileSizeBytes: rec.FileSizeBytes,
		},
	})
	return &rec, nil
}

// ListRecorded lists sessions with an uploaded recording, newest first,
// optionally filtered to one host.
func (s *StreamService) ListRecorded(ctx context.Context, hostID string) ([]domain.Stream, error) {
	return s.streams.ListRecorded(ctx, hostID)
}

// ResolveRecording locates the playable file for a session. Missing session
// or missing recording metadata and a metadata-present-but-file-gone state
// are distinct failures; both surface as not found with different messages.
func (s *StreamService) ResolveRecording(ctx context.Context, callID string) (path string, size int64, err error) {
	stream, err := s.streams.GetByCallID(ctx, callID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", 0, apperrors.NewDomainError("NOT_FOUND", "Recording not found", http.StatusNotFound, nil)
		}
		return "", 0, err
	}
	if !stream.HasRecording() || stream.Recording.FilePath == "" {
		return "", 0, apperrors.NewDomainError("NOT_FOUND", "Recording not found", http.StatusNotFound, nil)
	}

	size, err = s.store.Size(stream.Recording.FilePath)
	if err != nil {
		return "", 0, apperrors.NewDomainError("NOT_FOUND", "Recording file not found on server", http.StatusNotFound, nil)
	}
	return stream.Recording.FilePath, size, nil
}

// JoinStream bumps the viewer counter for an active session.
func (s *StreamService) JoinStream(ctx context.Context, callID string) (int64, error) {
	if _, err := s.GetStream(ctx, callID); err != nil {
		return 0, err
	}
	if s.viewers == nil {
		return 0, nil
	}
	count, err := s.viewers.Join(ctx, callID)
	if err != nil {
		s.logger.Warn("viewer counter unavailable", zap.String("call_id", callID), zap.Error(err))
		return 0, nil
	}
	return count, nil
}

// LeaveStream drops the viewer counter.
func (s *StreamService) LeaveStream(ctx context.Context, callID string) (int64, error) {
	if s.viewers == nil {
		return 0, nil
	}
	count, err := s.viewers.Leave(ctx, callID)
	if err != nil {
		s.logger.Warn("viewer counter unavailable", zap.String("call_id", callID), zap.Error(err))
		return 0, nil
	}
	return count, nil
}

// ViewerCount reads the current count; counter outages degrade to zero.
func (s *StreamService) ViewerCount(ctx context.Context, callID string) int64 {
	if s.viewers == nil {
		return 0
	}
	count, err := s.viewers.Count(ctx, callID)
	if err != nil {
		return 0
	}
	return count
}

// MediaStore exposes the backing store for upload handling.
func (s *StreamService) MediaStore() *media.Store {
	return s.store
}

func (s *StreamService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
