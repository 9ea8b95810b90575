package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/localnerve/dronedb/internal/config"
	"github.com/localnerve/dronedb/internal/events"
	"github.com/localnerve/dronedb/internal/logging"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "drones.created", events.DroneCreated.Subject("drones"))
	assert.Equal(t, "fleet.catalog.updated", events.DroneUpdated.Subject("fleet.catalog"))
	assert.Equal(t, "drones.deleted", events.DroneDeleted.Subject("drones"))
}

func TestEventEnvelope(t *testing.T) {
	event := events.New(events.DroneCreated, map[string]string{"id": "abc"})

	_, err := ulid.Parse(event.ID)
	require.NoError(t, err)

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, event.ID, body["eventId"])
	assert.Equal(t, "drone.created", body["type"])
	assert.NotEmpty(t, body["occurredAt"])
	assert.Equal(t, map[string]interface{}{"id": "abc"}, body["data"])
}

func TestEventIDsAreOrdered(t *testing.T) {
	first := events.New(events.DroneCreated, nil)
	second := events.New(events.DroneCreated, nil)
	assert.NotEqual(t, first.ID, second.ID)
	assert.LessOrEqual(t, first.ID[:10], second.ID[:10], "ulid time prefix is monotonic")
}

func TestNewPublisherWithoutURL(t *testing.T) {
	pub, err := events.NewPublisher(&config.Config{}, logging.Discard())
	require.NoError(t, err)
	assert.IsType(t, events.NoopPublisher{}, pub)
	assert.NoError(t, pub.Publish(context.Background(), events.New(events.DroneDeleted, nil)))
	pub.Close()
}

func TestMemoryPublisher(t *testing.T) {
	pub := &events.MemoryPublisher{}
	require.NoError(t, pub.Publish(context.Background(), events.New(events.DroneCreated, 1)))
	require.NoError(t, pub.Publish(context.Background(), events.New(events.DroneUpdated, 2)))

	got := pub.Events()
	require.Len(t, got, 2)
	assert.Equal(t, events.DroneUpdated, got[1].Type)

	pub.Err = errors.New("down")
	assert.Error(t, pub.Publish(context.Background(), events.New(events.DroneDeleted, 3)))
	assert.Len(t, pub.Events(), 2)
}
