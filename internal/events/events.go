package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"renthub/config"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

type Channel string

func (c Channel) String() string {
	return string(c)
}

const (
	// NOTIFICATIONS_CHANNEL carries domain events that fan out to mail.
	NOTIFICATIONS_CHANNEL Channel = "notifications"
	// CACHE_CHANNEL carries entity-invalidation events so every instance drops
	// its cached copy, not just the one that wrote.
	CACHE_CHANNEL Channel = "cache"
)

type EventType string

const (
	PAYMENT_REVIEWED        EventType = "payment_reviewed"
	BOOKING_RESOLVED        EventType = "booking_resolved"
	CHANGE_REQUEST_RESOLVED EventType = "change_request_resolved"
	USER_INVALIDATED        EventType = "user_invalidated"
)

type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Channel   Channel        `json:"channel"`
	UserID    *uuid.UUID     `json:"userId,omitempty"`
	Data      map[string]any `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

type EventHandler func(event Event) error

// EventBus publishes domain events over valkey pub/sub so every instance can
// react (a single instance simply hears its own messages back).
type EventBus struct {
	client   valkey.Client
	log      logger.Logger
	config   config.Config
	handlers map[Channel][]EventHandler
	mutex    sync.RWMutex
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func New(client valkey.Client, config config.Config) *EventBus {
	ctx, cancel := context.WithCancel(context.Background())

	return &EventBus{
		client:   client,
		log:      logger.New("eventBus"),
		config:   config,
		handlers: make(map[Channel][]EventHandler),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (eb *EventBus) Publish(channel Channel, event Event) error {
	log := eb.log.Function("Publish")

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Channel == "" {
		event.Channel = channel
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal event", err, "eventID", event.ID)
	}

	ctx, cancelPublish := context.WithTimeout(eb.ctx, 5*time.Second)
	defer cancelPublish()

	if err := eb.client.Do(
		ctx,
		eb.client.B().Publish().Channel(channel.String()).Message(string(eventData)).Build(),
	).Error(); err != nil {
		return log.Err("failed to publish event", err, "eventID", event.ID, "channel", channel)
	}

	log.Debug("published event", "eventID", event.ID, "type", event.Type, "channel", channel)
	return nil
}

// Subscribe registers a handler and starts the channel listener on first use.
func (eb *EventBus) Subscribe(channel Channel, handler EventHandler) {
	eb.mutex.Lock()
	defer eb.mutex.Unlock()

	firstHandler := len(eb.handlers[channel]) == 0
	eb.handlers[channel] = append(eb.handlers[channel], handler)

	if firstHandler {
		eb.wg.Add(1)
		go eb.listen(channel)
	}
}

func (eb *EventBus) listen(channel Channel) {
	defer eb.wg.Done()
	log := eb.log.Function("listen").With("channel", channel)

	err := eb.client.Receive(
		eb.ctx,
		eb.client.B().Subscribe().Channel(channel.String()).Build(),
		func(msg valkey.PubSubMessage) {
			var event Event
			if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
				log.Er("failed to unmarshal event", err)
				return
			}
			eb.dispatch(channel, event)
		},
	)
	if err != nil && eb.ctx.Err() == nil {
		log.Er("subscription ended unexpectedly", err)
	}
}

func (eb *EventBus) dispatch(channel Channel, event Event) {
	eb.mutex.RLock()
	handlers := make([]EventHandler, len(eb.handlers[channel]))
	copy(handlers, eb.handlers[channel])
	eb.mutex.RUnlock()

	log := eb.log.Function("dispatch")
	for _, handler := range handlers {
		if err := handler(event); err != nil {
			log.Er("event handler failed", err, "eventID", event.ID, "type", event.Type)
		}
	}
}

func (eb *EventBus) Close() error {
	eb.cancel()
	eb.wg.Wait()
	return nil
}
