package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/storefront/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCartItemAdded   EventType = "cart_item_added"
	EventCartItemRemoved EventType = "cart_item_removed"
	EventSessionIssued   EventType = "session_issued"
	EventSessionCleared  EventType = "session_cleared"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Kind  domain.IdentityKind `json:"kind"`
	ID    string              `json:"id,omitempty"`
	Email string              `json:"email,omitempty"`
}

// ActorFrom snapshots an identity.
func ActorFrom(identity domain.Identity) Actor {
	return Actor{Kind: identity.Kind(), ID: identity.ID(), Email: identity.Email()}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, actor domain.Identity, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     ActorFrom(actor),
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// CartItemPayload payload for cart mutations.
type CartItemPayload struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
}

// SessionPayload payload.
type SessionPayload struct {
	Role      domain.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at,omitempty"`
}
