// Package events publishes drone catalog changes to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/localnerve/dronedb/internal/config"
	"github.com/localnerve/dronedb/internal/logging"
	"github.com/nats-io/nats.go"
	"github.com/oklog/ulid/v2"
)

// Type names a catalog change
type Type string

// Catalog change types
const (
	DroneCreated Type = "drone.created"
	DroneUpdated Type = "drone.updated"
	DroneDeleted Type = "drone.deleted"
)

// Subject is the NATS subject for the change type under prefix, e.g. "drones.created"
func (t Type) Subject(prefix string) string {
	return prefix + "." + strings.TrimPrefix(string(t), "drone.")
}

// Event is the message body published for a change
type Event struct {
	ID         string      `json:"eventId"`
	Type       Type        `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	Data       interface{} `json:"data"`
}

// New stamps a change with a fresh ULID and the current time
func New(t Type, data interface{}) Event {
	return Event{
		ID:         ulid.Make().String(),
		Type:       t,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Publisher delivers change events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

// NewPublisher connects to NATS_URL, or returns a publisher that drops events when it is unset
func NewPublisher(cfg *config.Config, log logging.Logger) (Publisher, error) {
	if cfg.NatsURL == "" {
		log.Infof("NATS_URL not set, change events are disabled")
		return NoopPublisher{}, nil
	}
	return NewNatsPublisher(cfg.NatsURL, cfg.NatsSubjectPrefix, log)
}

// NatsPublisher publishes events as JSON on core NATS subjects
type NatsPublisher struct {
	nc     *nats.Conn
	prefix string
}

// NewNatsPublisher connects to the NATS server at url
func NewNatsPublisher(url, prefix string, log logging.Logger) (*NatsPublisher, error) {
	opts := []nats.Option{
		nats.Name("dronedb"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.WithError(err).Warnf("nats disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Infof("nats reconnected to %s", nc.ConnectedUrl())
		}),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats at %s: %w", url, err)
	}
	return &NatsPublisher{nc: nc, prefix: prefix}, nil
}

func (p *NatsPublisher) Publish(ctx context.Context, event Event) error {
	if p.nc == nil || p.nc.IsClosed() {
		return fmt.Errorf("nats not connected")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.ID, err)
	}
	return p.nc.Publish(event.Type.Subject(p.prefix), data)
}

func (p *NatsPublisher) Close() {
	if p.nc != nil {
		_ = p.nc.Drain()
		p.nc.Close()
	}
}

// NoopPublisher drops every event
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() {}

// MemoryPublisher keeps published events in memory
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
	Err    error
}

func (p *MemoryPublisher) Publish(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *MemoryPublisher) Close() {}

// Events returns a copy of everything published so far
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}
