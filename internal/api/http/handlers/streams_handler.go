package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/live-commerce/internal/api/dto"
	"github.com/spec-kit/live-commerce/internal/config"
	"github.com/spec-kit/live-commerce/internal/service"
	apperrors "github.com/spec-kit/live-commerce/pkg/util"
)

// StreamsHandler exposes livestream session endpoints.
type StreamsHandler struct {
	streams *service.StreamService
	media   config.MediaConfig
}

// NewStreamsHandler constructs handler.
func NewStreamsHandler(streams *service.StreamService, media config.MediaConfig) *StreamsHandler {
	return &StreamsHandler{streams: streams, media: media}
}

// ViewerToken handles GET /api/stream/token. Any authenticated user can
// obtain a provider token for joining calls.
func (h *StreamsHandler) ViewerToken(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	token, apiKey, err := h.streams.ViewerToken(principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.ViewerTokenResponse{Token: token, APIKey: apiKey})
}

// Create handles POST /api/stream. Any authenticated user may host.
func (h *StreamsHandler) Create(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req dto.StreamCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	stream, err := h.streams.CreateStream(c.Context(), principal.UserID, req.CallID, req.Title, req.IsRecordingEnabled)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Stream created successfully",
		"stream":  dto.NewStreamResponse(stream),
	})
}

// ListActive handles GET /api/stream.
func (h *StreamsHandler) ListActive(c *fiber.Ctx) error {
	streams, err := h.streams.ListActive(c.Context())
	if err != nil {
		return err
	}

	out := dto.NewStreamResponses(streams)
	for i := range out {
		count := h.streams.ViewerCount(c.Context(), out[i].CallID)
		out[i].ViewerCount = &count
	}
	return c.JSON(fiber.Map{"streams": out})
}

// ListRecorded handles GET /api/stream/recorded. An optional hostId query
// narrows the listing to one host; unfiltered it lists every recorded session.
func (h *StreamsHandler) ListRecorded(c *fiber.Ctx) error {
	streams, err := h.streams.ListRecorded(c.Context(), c.Query("hostId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"streams": dto.NewStreamResponses(streams)})
}

// Get handles GET /api/stream/:callId.
func (h *StreamsHandler) Get(c *fiber.Ctx) error {
	callID := c.Params("callId")
	stream, err := h.streams.GetStream(c.Context(), callID)
	if err != nil {
		return err
	}

	resp := dto.NewStreamResponse(stream)
	count := h.streams.ViewerCount(c.Context(), callID)
	resp.ViewerCount = &count
	return c.JSON(fiber.Map{"stream": resp})
}

// End handles POST /api/stream/:callId/end. The session must
// belong to the caller.
func (h *StreamsHandler) End(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	stream, err := h.streams.EndStream(c.Context(), principal.UserID, c.Params("callId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Stream ended successfully",
		"stream":  dto.NewStreamResponse(stream),
	})
}

// Join handles POST /api/stream/:callId/join.
func (h *StreamsHandler) Join(c *fiber.Ctx) error {
	count, err := h.streams.JoinStream(c.Context(), c.Params("callId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"viewerCount": count})
}

// Leave handles POST /api/stream/:callId/leave.
func (h *StreamsHandler) Leave(c *fiber.Ctx) error {
	count, err := h.streams.LeaveStream(c.Context(), c.Params("callId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"viewerCount": count})
}

// UploadRecording handles POST /api/stream/:callId/recording. Host-only.
// The recording arrives as multipart form data under the "video" field with
// an optional "duration" field in seconds.
func (h *StreamsHandler) UploadRecording(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	callID := c.Params("callId")

	fileHeader, err := c.FormFile("video")
	if err != nil {
		return apperrors.NewValidationError("No video file uploaded", nil)
	}
	if h.media.MaxUploadBytes > 0 && fileHeader.Size > h.media.MaxUploadBytes {
		return apperrors.NewValidationError("Uploaded file exceeds the maximum allowed size", map[string]any{
			"max_bytes": h.media.MaxUploadBytes,
		})
	}

	duration := 0
	if raw := c.FormValue("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil || duration < 0 {
			return apperrors.NewValidationError("Invalid duration value", nil)
		}
	}

	store := h.streams.MediaStore()
	fileName := store.FileName(callID)
	filePath := store.Path(fileName)
	if err := c.SaveFile(fileHeader, filePath); err != nil {
		return apperrors.NewInternalError(err)
	}

	recording, err := h.streams.AttachRecording(c.Context(), principal.UserID, callID, service.RecordingUpload{
		FileName:        fileName,
		FilePath:        filePath,
		FileSizeBytes:   fileHeader.Size,
		DurationSeconds: duration,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Recording uploaded successfully",
		"recording": dto.RecordingResponse{
			FileName:        recording.FileName,
			DurationSeconds: recording.DurationSeconds,
			FileSizeBytes:   recording.FileSizeBytes,
			RecordedAt:      recording.RecordedAt,
		},
	})
}
