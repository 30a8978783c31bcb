package service

import (
	"context"
	"encoding/json"
	"fmt"

	"autowebinar-be/internal/pkg/logger"
	"autowebinar-be/pkg/events"
	pktNats "autowebinar-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// IPublisherService fans billing events out to the in-process bus (watermill)
// that drives the affiliate consumer, and mirrors them onto NATS for
// downstream consumers outside this process.
type IPublisherService interface {
	PublishBillingEvent(ctx context.Context, event events.Event) error
}

type PublisherService struct {
	topic     string
	publisher message.Publisher
	natsPub   *pktNats.Publisher
	log       logger.ILogger
}

// NewPublisherService accepts a nil natsPub: the in-process bus is the one
// consumers in this binary depend on, NATS is best-effort.
func NewPublisherService(topic string, publisher message.Publisher, natsPub *pktNats.Publisher, log logger.ILogger) IPublisherService {
	return &PublisherService{
		topic:     topic,
		publisher: publisher,
		natsPub:   natsPub,
		log:       log,
	}
}

func (s *PublisherService) PublishBillingEvent(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event.Payload())
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", event.EventType())
	msg.SetContext(ctx)

	if err := s.publisher.Publish(s.topic, msg); err != nil {
		return err
	}

	if s.natsPub != nil {
		if err := s.natsPub.Publish(ctx, event); err != nil {
			s.log.Warn("publisher", "NATS mirror publish failed", map[string]interface{}{
				"event_type": event.EventType(),
				"error":      err.Error(),
			})
		}
	}
	return nil
}
