package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/weddingplan/planner/internal/shared/domain"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	return m.Called(ctx, routingKey, payload).Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

func TestBreakerPublisher_OpensAfterConsecutiveFailures(t *testing.T) {
	ctx := context.Background()
	brokerDown := errors.New("connection refused")

	next := new(mockPublisher)
	next.On("Publish", ctx, "timeline.created", mock.Anything).Return(brokerDown).Times(2)

	pub := NewBreakerPublisher(next, BreakerConfig{FailureThreshold: 2, Timeout: time.Hour}, nil)

	for range 2 {
		err := pub.Publish(ctx, "timeline.created", []byte(`{}`))
		assert.ErrorIs(t, err, brokerDown)
	}
	assert.Equal(t, "open", pub.State())

	err := pub.Publish(ctx, "timeline.created", []byte(`{}`))
	assert.ErrorIs(t, err, ErrBrokerUnavailable)
	next.AssertNumberOfCalls(t, "Publish", 2)
}

func TestBreakerPublisher_PassesThrough(t *testing.T) {
	ctx := context.Background()
	next := new(mockPublisher)
	next.On("Publish", ctx, "timeline.created", []byte(`{}`)).Return(nil)
	next.On("Close").Return(nil)

	pub := NewBreakerPublisher(next, BreakerConfig{}, nil)

	require.NoError(t, pub.Publish(ctx, "timeline.created", []byte(`{}`)))
	assert.Equal(t, "closed", pub.State())
	require.NoError(t, pub.Close())
	next.AssertExpectations(t)
}

func TestTopicMatches(t *testing.T) {
	tests := []struct {
		pattern, key string
		want         bool
	}{
		{"timeline.created", "timeline.created", true},
		{"timeline.*", "timeline.phases_adjusted", true},
		{"timeline.*", "timeline", false},
		{"*.created", "timeline.created", true},
		{"#", "timeline.created", true},
		{"timeline.#", "timeline", true},
		{"#.created", "a.b.created", true},
		{"timeline.created", "timeline.renamed", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, TopicMatches(tt.pattern, tt.key))
		})
	}
}

type sampleEvent struct {
	domain.BaseEvent
	Name string `json:"name"`
}

func TestLocalBus_Dispatch(t *testing.T) {
	ctx := context.Background()
	bus := NewLocalBus(nil)

	event := sampleEvent{BaseEvent: domain.NewBaseEvent(uuid.New(), "Timeline", "timeline.created"), Name: "Ana & Rui"}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	var got []Envelope
	bus.Subscribe("timeline.*", func(_ context.Context, env Envelope) error {
		got = append(got, env)
		return nil
	})
	bus.Subscribe("timeline.#", func(context.Context, Envelope) error {
		return errors.New("handler failure is logged only")
	})
	bus.Subscribe("guest.*", func(context.Context, Envelope) error {
		t.Fatal("unexpected delivery")
		return nil
	})

	require.NoError(t, bus.Publish(ctx, "timeline.created", payload))
	require.Len(t, got, 1)
	assert.Equal(t, event.EventID(), got[0].EventID)
	assert.Equal(t, event.AggregateID(), got[0].AggregateID)

	var decoded sampleEvent
	require.NoError(t, json.Unmarshal(got[0].Payload, &decoded))
	assert.Equal(t, "Ana & Rui", decoded.Name)

	assert.NoError(t, bus.Publish(ctx, "timeline.created", []byte("not json")))
}

func TestNoopPublisher(t *testing.T) {
	pub := NewNoopPublisher(nil)
	assert.NoError(t, pub.Publish(context.Background(), "timeline.created", nil))
	assert.NoError(t, pub.Close())
}

func TestDeliver(t *testing.T) {
	ctx := context.Background()

	pub := new(mockPublisher)
	pub.On("Publish", ctx, "timeline.phase_adjusted", []byte(`{}`)).Return(nil).Once()
	require.NoError(t, Deliver(ctx, pub, "timeline.phase_adjusted", []byte(`{}`)))

	pub.On("Publish", ctx, "timeline.created", []byte(`{}`)).Return(errors.New("handler down")).Once()
	assert.EqualError(t, Deliver(ctx, pub, "timeline.created", []byte(`{}`)), "handler down")

	assert.Error(t, Deliver(ctx, pub, "", []byte(`{}`)))
	pub.AssertExpectations(t)
}
