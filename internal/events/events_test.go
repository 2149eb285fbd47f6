package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []EventType
	d.Subscribe(EventRequestApproved, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})
	d.Subscribe(EventRequestApproved, func(_ context.Context, e Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventRequestApproved, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventRequestApproved})
	assert.EqualError(t, err, "boom")
	assert.Equal(t, []EventType{EventRequestApproved, EventRequestApproved}, got)

	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventAssetReturned}))
}

func TestDispatcher_StampsAndRecovers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var seen Event
	d.Subscribe(EventAffiliationRemoved, func(_ context.Context, e Event) error {
		seen = e
		return nil
	})
	d.Subscribe(EventAffiliationRemoved, func(context.Context, Event) error {
		panic("handler bug")
	})
	d.Subscribe(EventAffiliationRemoved, nil)

	err := d.Publish(context.Background(), Event{Type: EventAffiliationRemoved, ResourceID: "e1@acme.io"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler panic")
	assert.NotEmpty(t, seen.ID)
	assert.False(t, seen.Timestamp.IsZero())
	assert.Equal(t, "e1@acme.io", seen.ResourceID)

	fixed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.Error(t, d.Publish(context.Background(), Event{ID: "evt-1", Type: EventAffiliationRemoved, Timestamp: fixed}))
	assert.Equal(t, "evt-1", seen.ID)
	assert.Equal(t, fixed, seen.Timestamp)
}

func TestStreamPublisher_XAdd(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	p := NewStreamPublisher(client, "assetverse:events", 100)
	require.NotNil(t, p)

	ev := Event{
		ID:         "evt-1",
		Type:       EventRequestSubmitted,
		ResourceID: "req-1",
		Actor:      Actor{Email: "emp@acme.io"},
		Timestamp:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Payload: RequestSubmittedPayload{
			AssetID:        "asset-1",
			AssetName:      "Laptop",
			RequesterEmail: "emp@acme.io",
			HREmail:        "hr@acme.io",
			CompanyName:    "Acme",
		},
	}
	require.NoError(t, p.Handle(context.Background(), ev))

	entries, err := client.XRange(context.Background(), "assetverse:events", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	values := entries[0].Values
	assert.Equal(t, "request_submitted", values["type"])
	assert.Equal(t, "req-1", values["resource_id"])
	assert.Equal(t, "emp@acme.io", values["actor"])

	var payload RequestSubmittedPayload
	require.NoError(t, json.Unmarshal([]byte(values["payload"].(string)), &payload))
	assert.Equal(t, "Laptop", payload.AssetName)
}

func TestStreamPublisher_NilClient(t *testing.T) {
	p := NewStreamPublisher(nil, "s", 0)
	assert.Nil(t, p)
	assert.NoError(t, p.Handle(context.Background(), Event{}))
	assert.Equal(t, "", p.Stream())
}
