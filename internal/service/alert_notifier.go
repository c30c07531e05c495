package service

import (
	"context"
	"fmt"
	"time"

	"giziai-be/internal/pkg/logger"
	"giziai-be/internal/pkg/mailer"
	"giziai-be/pkg/events"
	pktNats "giziai-be/pkg/nats"
)

// alertNotifier fans pipeline failures out to the operator channels: the
// structured log, the NATS event stream, and a best-effort alert email.
type alertNotifier struct {
	logger         logger.ILogger
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
}

func NewAlertNotifier(log logger.ILogger, emailService mailer.IEmailService, eventPublisher *pktNats.Publisher) *alertNotifier {
	return &alertNotifier{
		logger:         log,
		emailService:   emailService,
		eventPublisher: eventPublisher,
	}
}

func (n *alertNotifier) NotifyFailure(stage string, sessionID string, err error) {
	n.logger.Error("chat", "pipeline stage failed", map[string]interface{}{
		"stage":      stage,
		"session_id": sessionID,
		"error":      err.Error(),
	})

	if n.eventPublisher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if pubErr := n.eventPublisher.Publish(ctx, events.GenerationFailed(sessionID, stage, err.Error())); pubErr != nil {
			n.logger.Warn("chat", "failed to publish failure event", map[string]interface{}{"error": pubErr.Error()})
		}
	}

	if n.emailService != nil {
		go func() {
			subject := fmt.Sprintf("GiziAI %s failure", stage)
			body := fmt.Sprintf("Stage %s failed for session %s: %v", stage, sessionID, err)
			if mailErr := n.emailService.SendOperatorAlert(subject, body); mailErr != nil {
				n.logger.Warn("chat", "failed to send alert email", map[string]interface{}{"error": mailErr.Error()})
			}
		}()
	}
}
