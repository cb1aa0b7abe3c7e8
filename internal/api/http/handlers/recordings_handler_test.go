package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/live-commerce/internal/auth"
	"github.com/spec-kit/live-commerce/internal/config"
	"github.com/spec-kit/live-commerce/internal/domain"
	"github.com/spec-kit/live-commerce/internal/media"
	"github.com/spec-kit/live-commerce/internal/repository"
	"github.com/spec-kit/live-commerce/internal/service"
	apperrors "github.com/spec-kit/live-commerce/pkg/util"
)

// fixedStreamRepo serves a single session for playback tests.
type fixedStreamRepo struct {
	repository.StreamRepository
	stream *domain.Stream
}

func (r *fixedStreamRepo) GetByCallID(ctx context.Context, callID string) (*domain.Stream, error) {
	if r.stream == nil || r.stream.CallID != callID {
		return nil, pgx.ErrNoRows
	}
	return r.stream, nil
}

func playbackApp(t *testing.T, stream *domain.Stream, content string) (*fiber.App, string) {
	t.Helper()

	store, err := media.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("media store: %v", err)
	}

	path := ""
	if stream != nil && stream.Recording != nil {
		path = store.Path(stream.Recording.FileName)
		stream.Recording.FilePath = path
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write recording: %v", err)
		}
	}

	videoToken := auth.NewVideoTokenProvider("key", "secret", time.Hour)
	svc := service.NewStreamService(&fixedStreamRepo{stream: stream}, store, videoToken, nil, nil, zap.NewNop())
	handler := NewRecordingsHandler(svc, config.MediaConfig{ContentType: "video/webm"})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": domainErr.Code, "message": domainErr.Message},
			})
		},
	})
	app.Get("/api/stream/:callId/recording/video", handler.Video)
	return app, path
}

func recordedStream() *domain.Stream {
	recordedAt := time.Now()
	return &domain.Stream{
		ID:                 "stream-1",
		CallID:             "call-1",
		HostID:             "host-1",
		Title:              "Recorded",
		Status:             domain.StreamStatusEnded,
		IsRecordingEnabled: true,
		Recording: &domain.Recording{
			FileName:        "call-1-123.webm",
			DurationSeconds: 30,
			FileSizeBytes:   26,
			RecordedAt:      recordedAt,
		},
	}
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error.Message
}

func TestVideoFullBody(t *testing.T) {
	content := "abcdefghijklmnopqrstuvwxyz"
	app, _ := playbackApp(t, recordedStream(), content)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/stream/call-1/recording/video", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Accept-Ranges"); got != "bytes" {
		t.Errorf("Accept-Ranges = %q", got)
	}
	if got := resp.Header.Get("Content-Type"); got != "video/webm" {
		t.Errorf("Content-Type = %q", got)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != content {
		t.Errorf("body = %q", body)
	}
}

func TestVideoPartialContent(t *testing.T) {
	content := "abcdefghijklmnopqrstuvwxyz"
	app, _ := playbackApp(t, recordedStream(), content)

	req := httptest.NewRequest(http.MethodGet, "/api/stream/call-1/recording/video", nil)
	req.Header.Set("Range", "bytes=3-7")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusPartialContent {
		t.Fatalf("expected 206, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Range"); got != "bytes 3-7/26" {
		t.Errorf("Content-Range = %q", got)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "defgh" {
		t.Errorf("body = %q", body)
	}
}

func TestVideoOpenEndedRange(t *testing.T) {
	content := "abcdefghijklmnopqrstuvwxyz"
	app, _ := playbackApp(t, recordedStream(), content)

	req := httptest.NewRequest(http.MethodGet, "/api/stream/call-1/recording/video", nil)
	req.Header.Set("Range", "bytes=20-")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusPartialContent {
		t.Fatalf("expected 206, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Range"); got != "bytes 20-25/26" {
		t.Errorf("Content-Range = %q", got)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "uvwxyz" {
		t.Errorf("body = %q", body)
	}
}

func TestVideoMalformedRange(t *testing.T) {
	app, _ := playbackApp(t, recordedStream(), "abcdefghijklmnopqrstuvwxyz")

	for _, header := range []string{"bytes=-5", "bytes=5-2", "bytes=0-5,10-15", "chunks=0-5", "bytes=100-"} {
		req := httptest.NewRequest(http.MethodGet, "/api/stream/call-1/recording/video", nil)
		req.Header.Set("Range", header)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusRequestedRangeNotSatisfiable {
			t.Errorf("Range %q: expected 416, got %d", header, resp.StatusCode)
		}
		if got := resp.Header.Get("Content-Range"); got != "bytes */26" {
			t.Errorf("Range %q: Content-Range = %q, want %q", header, got, "bytes */26")
		}
	}
}

func TestVideoNotFoundVariants(t *testing.T) {
	t.Run("unknown call id", func(t *testing.T) {
		app, _ := playbackApp(t, nil, "")
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/stream/call-x/recording/video", nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", resp.StatusCode)
		}
		if msg := errorMessage(t, resp); msg != "Recording not found" {
			t.Errorf("message = %q", msg)
		}
	})

	t.Run("metadata without file", func(t *testing.T) {
		app, path := playbackApp(t, recordedStream(), "abcdefghijklmnopqrstuvwxyz")
		if err := os.Remove(path); err != nil {
			t.Fatalf("remove: %v", err)
		}
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/stream/call-1/recording/video", nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", resp.StatusCode)
		}
		if msg := errorMessage(t, resp); msg != "Recording file not found on server" {
			t.Errorf("message = %q", msg)
		}
	})
}
