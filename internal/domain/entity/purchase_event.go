package entity

import (
	"time"

	"github.com/google/uuid"
)

type PurchaseEventAction string

const (
	EventActionPurchase PurchaseEventAction = "purchase"
	EventActionRestore  PurchaseEventAction = "restore"
)

// Restore outcomes recorded in the event log. Purchase events reuse the
// PurchaseOutcome values.
const (
	RestoreOutcomeRestored = "restored"
	RestoreOutcomeNone     = "none"
	RestoreOutcomeFailed   = "failed"
)

// PurchaseEvent is an append-only telemetry record of one upgrade-screen
// action and how it settled. It carries no entitlement authority.
type PurchaseEvent struct {
	ID        uuid.UUID
	UserID    string
	Action    PurchaseEventAction
	ProductID string
	Outcome   string
	ErrorText string
	CreatedAt time.Time
}

// NewPurchaseEvent creates a purchase event record
func NewPurchaseEvent(userID string, action PurchaseEventAction, productID, outcome, errorText string) *PurchaseEvent {
	return &PurchaseEvent{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		ProductID: productID,
		Outcome:   outcome,
		ErrorText: errorText,
		CreatedAt: time.Now(),
	}
}
