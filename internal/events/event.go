package events

import (
	"encoding/json"
	"time"

	model "allocation-tracker/internal/models"
)

// Event types sent on the live stream
const (
	TypeItemsUpdated = "items.updated"
	TypeCycleStatus  = "cycle.status"
	TypeQuotaUpdated = "quota.updated"
)

// Event is the envelope delivered to live viewers. A non-empty UserID scopes the event
// to that user's subscriptions.
type Event struct {
	Type    string          `json:"type"`
	TS      time.Time       `json:"ts"`
	CycleID string          `json:"cycleId"`
	UserID  string          `json:"userId,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

// Publisher accepts events for best-effort delivery. Publish must not block on slow viewers.
type Publisher interface {
	Publish(ev Event)
}

// ItemsUpdated carries the new counters of items touched by a committed batch
type ItemsUpdated struct {
	CycleID string               `json:"cycleId"`
	Items   []model.ItemSnapshot `json:"items"`
}

// CycleStatusChanged is published after every cycle transition
type CycleStatusChanged struct {
	ID     string            `json:"id"`
	Status model.CycleStatus `json:"status"`
}

// QuotaUpdated tells one user how much of the cycle cap they hold
type QuotaUpdated struct {
	CycleID         string `json:"cycleId"`
	UserID          string `json:"userId"`
	ClaimedQty      int    `json:"claimedQty"`
	MaxItemsPerUser int    `json:"maxItemsPerUser"`
}

func newEvent(typ, cycleID, userID string, payload any) Event {
	// payload types are plain structs; Marshal cannot fail on them
	raw, _ := json.Marshal(payload)
	return Event{Type: typ, TS: time.Now().UTC(), CycleID: cycleID, UserID: userID, Payload: raw}
}

// NewItemsUpdated builds a cycle-wide items.updated event
func NewItemsUpdated(cycleID string, items []model.ItemSnapshot) Event {
	return newEvent(TypeItemsUpdated, cycleID, "", ItemsUpdated{CycleID: cycleID, Items: items})
}

// NewCycleStatus builds a cycle.status event for cycle
func NewCycleStatus(cycle model.Cycle) Event {
	return newEvent(TypeCycleStatus, cycle.ID, "", CycleStatusChanged{ID: cycle.ID, Status: cycle.Status})
}

// NewQuotaUpdated builds a quota.updated event visible only to userID
func NewQuotaUpdated(cycleID, userID string, claimed, max int) Event {
	return newEvent(TypeQuotaUpdated, cycleID, userID, QuotaUpdated{CycleID: cycleID, UserID: userID, ClaimedQty: claimed, MaxItemsPerUser: max})
}
