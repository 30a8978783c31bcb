package service

import (
	"context"
	"encoding/json"

	"autowebinar-be/internal/pkg/logger"
	"autowebinar-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// IConsumerService runs the affiliate accrual worker: it approves pending
// affiliate sales when the billing machine reports an approved invoice.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type ConsumerService struct {
	subscriber message.Subscriber
	topic      string
	affiliates IAffiliateService
	log        logger.ILogger
}

func NewConsumerService(subscriber message.Subscriber, topic string, affiliates IAffiliateService, log logger.ILogger) IConsumerService {
	return &ConsumerService{
		subscriber: subscriber,
		topic:      topic,
		affiliates: affiliates,
		log:        log,
	}
}

func (s *ConsumerService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, s.topic)
	if err != nil {
		return err
	}

	for msg := range messages {
		if msg.Metadata.Get("event_type") != events.TypeInvoiceApproved {
			msg.Ack()
			continue
		}

		var payload struct {
			CheckoutId string `json:"checkout_id"`
		}
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			s.log.Error("consumer", "Failed to decode billing event", map[string]interface{}{"error": err.Error()})
			msg.Ack() // poison message, don't loop on it
			continue
		}

		checkoutId, err := uuid.Parse(payload.CheckoutId)
		if err != nil {
			msg.Ack()
			continue
		}

		if err := s.affiliates.ApproveSaleForCheckout(ctx, checkoutId); err != nil {
			s.log.Error("consumer", "Failed to approve affiliate sale", map[string]interface{}{
				"checkout_id": payload.CheckoutId,
				"error":       err.Error(),
			})
			msg.Nack() // retry
			continue
		}

		msg.Ack()
	}

	return nil
}
