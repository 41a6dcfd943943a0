package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/repository"
	"portfolio/internal/repository/memory"
	"portfolio/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededService(t *testing.T, bus *EventBus) (*PortfolioService, *memory.Store) {
	t.Helper()
	store := memory.New()
	ds, err := seed.Canonical()
	require.NoError(t, err)
	_, err = seed.IfEmpty(context.Background(), store, ds)
	require.NoError(t, err)
	return NewPortfolioService(store, bus), store
}

func TestSubmitContactValidation(t *testing.T) {
	svc, store := newSeededService(t, nil)
	valid := domain.MessageInput{Name: "Ada", Email: "ada@example.com", Message: "hi"}

	tests := []struct {
		name      string
		mutate    func(in *domain.MessageInput)
		wantField string
	}{
		{"missing name", func(in *domain.MessageInput) { in.Name = "" }, "name"},
		{"missing email", func(in *domain.MessageInput) { in.Email = "" }, "email"},
		{"malformed email", func(in *domain.MessageInput) { in.Email = "not-an-email" }, "email"},
		{"missing message", func(in *domain.MessageInput) { in.Message = "" }, "message"},
		{"message too long", func(in *domain.MessageInput) { in.Message = strings.Repeat("x", 5001) }, "message"},
		{"first failing field wins", func(in *domain.MessageInput) { in.Name = ""; in.Message = "" }, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			_, err := svc.SubmitContact(context.Background(), in)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.NotEmpty(t, vErr.Message)
		})
	}

	assert.Zero(t, store.MessageCount())
}

func TestSubmitContactStoresAndPublishes(t *testing.T) {
	bus := NewEventBus()
	events := make(chan Event, 1)
	bus.Subscribe(events)
	svc, store := newSeededService(t, bus)

	before := time.Now().UTC()
	msg, err := svc.SubmitContact(context.Background(), domain.MessageInput{Name: "Ada", Email: "ada@example.com", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), msg.ID)
	assert.False(t, msg.CreatedAt.Before(before))
	assert.Equal(t, 1, store.MessageCount())

	select {
	case ev := <-events:
		assert.Equal(t, EventMessageReceived, ev.Type)
		assert.Equal(t, MessageReceived{ID: msg.ID, CreatedAt: msg.CreatedAt}, ev.Payload)
	default:
		t.Fatal("expected a message_received event")
	}
}

func TestProjectNotFound(t *testing.T) {
	svc, _ := newSeededService(t, nil)

	p, err := svc.Project(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "AI-Powered Code Assistant", p.Title)

	_, err = svc.Project(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestSnapshot(t *testing.T) {
	svc, _ := newSeededService(t, nil)
	ds, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	canonical, err := seed.Canonical()
	require.NoError(t, err)
	assert.Equal(t, canonical.Counts(), ds.Counts())
	assert.Equal(t, int64(1), ds.Skills[0].ID)
}

func TestBackend(t *testing.T) {
	svc, _ := newSeededService(t, nil)
	assert.Equal(t, repository.KindMemory, svc.Backend())
}

func TestEventBusDropsWhenSubscriberFull(t *testing.T) {
	bus := NewEventBus()
	ch := make(chan Event, 1)
	bus.Subscribe(ch)

	bus.Publish(Event{Type: EventMessageReceived})
	bus.Publish(Event{Type: EventMessageReceived})

	assert.Len(t, ch, 1)
}

func TestNilEventBusPublish(t *testing.T) {
	var bus *EventBus
	assert.NotPanics(t, func() { bus.Publish(Event{Type: EventMessageReceived}) })
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	kept := make(chan Event, 1)
	removed := make(chan Event, 1)
	bus.Subscribe(kept)
	bus.Subscribe(removed)

	bus.Unsubscribe(removed)
	close(removed)
	bus.Publish(Event{Type: EventMessageReceived})

	assert.Len(t, kept, 1)
	_, open := <-removed
	assert.False(t, open)

	bus.Unsubscribe(removed)
}
