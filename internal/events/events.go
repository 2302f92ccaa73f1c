package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies a state-change event emitted by the core services.
type EventType string

const (
	EventSessionConnected    EventType = "session.connected"
	EventSessionDisconnected EventType = "session.disconnected"
	EventTokensCredited      EventType = "tokens.credited"
	EventTokensDebited       EventType = "tokens.debited"
	EventCreditConverted     EventType = "credit.converted"
	EventCreditMinted        EventType = "credit.minted"
	EventListingCreated      EventType = "listing.created"
	EventListingSold         EventType = "listing.sold"
)

// Event carries a state-change notification to connected clients.
type Event struct {
	ID        uuid.UUID              `json:"id"`
	Type      EventType              `json:"type"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// New builds an event of the given type with the supplied payload.
func New(eventType EventType, data map[string]interface{}) Event {
	return Event{
		ID:        uuid.New(),
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// Publisher is the narrow interface the core services use to announce
// state changes. The WebSocket hub implements it; tests substitute fakes.
type Publisher interface {
	Publish(event Event)
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
