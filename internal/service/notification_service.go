package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/live-commerce/internal/config"
	"github.com/spec-kit/live-commerce/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventStreamStarted, n.handleEvent("StreamStarted"))
	n.dispatcher.Subscribe(events.EventStreamEnded, n.handleEvent("StreamEnded"))
	n.dispatcher.Subscribe(events.EventRecordingUploaded, n.handleEvent("RecordingUploaded"))
	n.dispatcher.Subscribe(events.EventRoleChanged, n.handleEvent("RoleChanged"))
	n.dispatcher.Subscribe(events.EventUserDeleted, n.handleEvent("UserDeleted"))
	n.dispatcher.Subscribe(events.EventProductCreated, n.handleEvent("ProductCreated"))
}

func (n *NotificationService) handleEvent(name string) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		n.logger.Info(name,
			zap.String("subject_id", event.SubjectID),
			zap.String("actor_id", event.ActorID),
			zap.Any("payload", event.Payload))
		n.sendWebhookNotificationStub(ctx, event)
		return nil
	}
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
