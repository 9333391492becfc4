package services

import (
	"context"
	"log/slog"
	"time"
)

const publishTimeout = 5 * time.Second

// EventPublisher publishes a JSON body under a routing key
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body interface{}) error
}

// NotificationService forwards loan events to the message broker
type NotificationService struct {
	publisher EventPublisher
	logger    *slog.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(publisher EventPublisher, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		publisher: publisher,
		logger:    logger,
	}
}

// NotifyLoan publishes event with its type as routing key.
// Failures are logged and never reach the caller; the loan change is already committed.
func (s *NotificationService) NotifyLoan(ctx context.Context, event LoanEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, string(event.Type), event); err != nil {
		s.logger.Error("failed to publish loan event",
			"type", event.Type,
			"loan_id", event.LoanID,
			"error", err,
		)
		return
	}
	s.logger.Debug("loan event published", "type", event.Type, "loan_id", event.LoanID)
}
