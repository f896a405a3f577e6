package event

import (
	"context"
	"errors"
	"testing"

	"github.com/omnideploy/backend/internal/domain/receiving"
	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.received = append(h.received, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func newTestEvent() shared.DomainEvent {
	return &receiving.PutawayCommittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			receiving.EventTypePutawayCommitted,
			receiving.AggregateTypeReceivingWorkflow,
			uuid.New(), uuid.New(),
		),
	}
}

func TestInMemoryEventBus_PublishToSubscriber(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{receiving.EventTypePutawayCommitted}}
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent()))

	require.Len(t, handler.received, 1)
	assert.Equal(t, receiving.EventTypePutawayCommitted, handler.received[0].EventType())
}

func TestInMemoryEventBus_TypeFiltering(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	interested := &recordingHandler{types: []string{receiving.EventTypePutawayCommitted}}
	other := &recordingHandler{types: []string{receiving.EventTypeArrivalRegistered}}
	catchAll := &recordingHandler{}
	bus.Subscribe(interested)
	bus.Subscribe(other)
	bus.Subscribe(catchAll)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent()))

	assert.Len(t, interested.received, 1)
	assert.Empty(t, other.received)
	assert.Len(t, catchAll.received, 1)
}

func TestInMemoryEventBus_FailingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{types: []string{receiving.EventTypePutawayCommitted}, err: errors.New("boom")}
	healthy := &recordingHandler{types: []string{receiving.EventTypePutawayCommitted}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent()))

	assert.Len(t, healthy.received, 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{receiving.EventTypePutawayCommitted}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent()))

	assert.Empty(t, handler.received)
}
