package service

import (
	"context"
	"testing"
	"time"

	"github.com/barathvelmu/deterministic-voice-intelligence/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteActivityRoundTrip(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	consumer := NewConsumerService(pubSub, "NOTE_ADDED", nopLogger{})
	require.NoError(t, consumer.Consume(context.Background()))

	publisher := NewPublisherService("NOTE_ADDED", pubSub)
	require.NoError(t, publisher.Publish(events.NewNoteAdded("buy oat milk", 3)))
	require.NoError(t, publisher.Publish(events.NewNoteAdded("call the dentist", 4)))

	assert.Eventually(t, func() bool {
		return consumer.Processed() == 2
	}, 2*time.Second, 10*time.Millisecond)
}
