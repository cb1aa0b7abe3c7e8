package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/live-commerce/internal/config"
	"github.com/spec-kit/live-commerce/internal/media"
	"github.com/spec-kit/live-commerce/internal/service"
	apperrors "github.com/spec-kit/live-commerce/pkg/util"
)

// RecordingsHandler serves recording playback with byte-range support.
type RecordingsHandler struct {
	streams *service.StreamService
	media   config.MediaConfig
}

// NewRecordingsHandler constructs handler.
func NewRecordingsHandler(streams *service.StreamService, mediaCfg config.MediaConfig) *RecordingsHandler {
	return &RecordingsHandler{streams: streams, media: mediaCfg}
}

// Video handles GET /api/stream/:callId/recording/video. Without a Range
// header the full file is sent; a valid single range yields 206 with the
// requested window. Malformed or unsatisfiable ranges are rejected with 416.
func (h *RecordingsHandler) Video(c *fiber.Ctx) error {
	path, size, err := h.streams.ResolveRecording(c.Context(), c.Params("callId"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderAcceptRanges, "bytes")
	c.Set(fiber.HeaderContentType, h.media.ContentType)

	byteRange, err := media.ParseRange(c.Get(fiber.HeaderRange), size)
	if err != nil {
		c.Set(fiber.HeaderContentRange, fmt.Sprintf("bytes */%d", size))
		return err
	}

	store := h.streams.MediaStore()
	if byteRange == nil {
		body, err := store.Open(path)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		c.Set(fiber.HeaderContentLength, fmt.Sprintf("%d", size))
		return c.SendStream(body, int(size))
	}

	body, err := store.OpenWindow(path, *byteRange)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	c.Set(fiber.HeaderContentRange, fmt.Sprintf("bytes %d-%d/%d", byteRange.Start, byteRange.End, size))
	c.Set(fiber.HeaderContentLength, fmt.Sprintf("%d", byteRange.Length()))
	c.Status(fiber.StatusPartialContent)
	return c.SendStream(body, int(byteRange.Length()))
}
