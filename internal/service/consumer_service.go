// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/barathvelmu/deterministic-voice-intelligence/internal/dto"
	"github.com/barathvelmu/deterministic-voice-intelligence/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
	Processed() int64
}

// consumerService drains note activity events off the in-process bus and
// records them, keeping telemetry out of the request path.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
	processed atomic.Int64
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) Processed() int64 {
	return cs.processed.Load()
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.NoteActivityMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal note activity message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.processed.Add(1)
	cs.logger.Info("consumer", "Note saved", map[string]interface{}{
		"event_type": msg.Metadata.Get("event_type"),
		"note_chars": len(payload.Note),
		"note_count": payload.Count,
	})
	msg.Ack()
}
