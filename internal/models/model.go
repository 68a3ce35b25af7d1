package models

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// CycleStatus is the lifecycle state of a cycle
type CycleStatus string

const (
	CycleDraft    CycleStatus = "DRAFT"
	CycleOpen     CycleStatus = "OPEN"
	CycleClosed   CycleStatus = "CLOSED"
	CycleArchived CycleStatus = "ARCHIVED"
)

// MaxQuantity bounds every quantity and cap; the store keeps them in 32-bit columns
const MaxQuantity = math.MaxInt32

// ValidQuantity reports whether n is an acceptable quantity or cap
func ValidQuantity(n int) bool {
	return n >= 1 && n <= MaxQuantity
}

// HasResults reports whether allocations of the cycle are final enough to be reported
func (s CycleStatus) HasResults() bool {
	return s == CycleClosed || s == CycleArchived
}

// Cycle is one allocation round with a per-user item cap
type Cycle struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Status          CycleStatus `json:"status"`
	MaxItemsPerUser int         `json:"maxItemsPerUser"`
	OpenAt          *time.Time  `json:"openAt,omitempty"`
	CloseAt         *time.Time  `json:"closeAt,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// Item is claimable stock owned by one cycle
type Item struct {
	ID            string          `json:"id"`
	CycleID       string          `json:"cycleId"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	TotalQty      int             `json:"totalQty"`
	AllocatedQty  int             `json:"allocatedQty"`
	MaxQtyPerUser *int            `json:"maxQtyPerUser,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Remaining returns the unallocated quantity of the item
func (i Item) Remaining() int {
	return i.TotalQty - i.AllocatedQty
}

// Snapshot returns the allocation counters published to live viewers
func (i Item) Snapshot() ItemSnapshot {
	return ItemSnapshot{ID: i.ID, AllocatedQty: i.AllocatedQty, TotalQty: i.TotalQty}
}

// Bid is the cumulative quantity claimed by one user for one item in one cycle
type Bid struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ItemID    string    `json:"itemId"`
	CycleID   string    `json:"cycleId"`
	Qty       int       `json:"qty"`
	CreatedAt time.Time `json:"createdAt"`
}

// IdempotencyRecord marks a committed claim batch key
type IdempotencyRecord struct {
	Key       string    `json:"key"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Selection is a single (item, quantity) claim inside a batch
type Selection struct {
	ItemID string `json:"itemId"`
	Qty    int    `json:"qty"`
}

// ClaimBatch is one atomic claim request
type ClaimBatch struct {
	Selections     []Selection `json:"selections"`
	IdempotencyKey string      `json:"idempotencyKey"`
}

type ItemSnapshot struct {
	ID           string `json:"id"`
	AllocatedQty int    `json:"allocatedQty"`
	TotalQty     int    `json:"totalQty"`
}

// ClaimResult is returned for a committed claim batch
type ClaimResult struct {
	CycleID         string         `json:"cycleId"`
	Bids            []Bid          `json:"bids"`
	Items           []ItemSnapshot `json:"items"`
	ClaimedInCycle  int            `json:"claimedInCycle"`
	MaxItemsPerUser int            `json:"maxItemsPerUser"`
}

type ItemSummary struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type CycleSummary struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Status CycleStatus `json:"status"`
}

// BidView is a bid joined with the item and cycle it belongs to
type BidView struct {
	ID        string       `json:"id"`
	Qty       int          `json:"qty"`
	CreatedAt time.Time    `json:"createdAt"`
	Item      ItemSummary  `json:"item"`
	Cycle     CycleSummary `json:"cycle"`
}

// CycleCatalog is an open cycle together with its items
type CycleCatalog struct {
	Cycle Cycle  `json:"cycle"`
	Items []Item `json:"items"`
}

type CycleInput struct {
	Name            string     `json:"name"`
	MaxItemsPerUser int        `json:"maxItemsPerUser"`
	OpenAt          *time.Time `json:"openAt,omitempty"`
	CloseAt         *time.Time `json:"closeAt,omitempty"`
}

type ItemInput struct {
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	TotalQty      int             `json:"totalQty"`
	MaxQtyPerUser *int            `json:"maxQtyPerUser,omitempty"`
}

// ItemPatch carries the fields of an item update; nil fields are left untouched.
// ClearMaxQtyPerUser removes the per-user cap.
type ItemPatch struct {
	Name               *string          `json:"name,omitempty"`
	Description        *string          `json:"description,omitempty"`
	Price              *decimal.Decimal `json:"price,omitempty"`
	TotalQty           *int             `json:"totalQty,omitempty"`
	MaxQtyPerUser      *int             `json:"maxQtyPerUser,omitempty"`
	ClearMaxQtyPerUser bool             `json:"clearMaxQtyPerUser,omitempty"`
}

type ImportRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type ImportReport struct {
	Created int              `json:"created"`
	Failed  int              `json:"failed"`
	Errors  []ImportRowError `json:"errors"`
}

type ResultBid struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Qty       int       `json:"qty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ItemResult struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	TotalQty      int             `json:"totalQty"`
	AllocatedQty  int             `json:"allocatedQty"`
	PercentFilled float64         `json:"percentFilled"`
	UserCount     int             `json:"userCount"`
	Bids          []ResultBid     `json:"bids"`
}

type UserItemResult struct {
	ItemID   string `json:"itemId"`
	ItemName string `json:"itemName"`
	Qty      int    `json:"qty"`
}

type UserResult struct {
	UserID   string           `json:"userId"`
	TotalQty int              `json:"totalQty"`
	Items    []UserItemResult `json:"items"`
}

// CycleResults is the aggregated allocation dataset of a finished cycle
type CycleResults struct {
	Cycle CycleSummary `json:"cycle"`
	Items []ItemResult `json:"items"`
	Users []UserResult `json:"users"`
}

type WinnerLine struct {
	ItemID    string          `json:"itemId"`
	Item      string          `json:"item"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// WinnerSummary is the per-user payload handed to the notification collaborator
type WinnerSummary struct {
	CycleID         string          `json:"cycleId"`
	CycleName       string          `json:"cycleName"`
	UserID          string          `json:"userId"`
	Lines           []WinnerLine    `json:"lines"`
	TotalQty        int             `json:"totalQty"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	PaymentDeadline time.Time       `json:"paymentDeadline"`
}

type NotifyReport struct {
	Sent       int       `json:"sent"`
	Failed     int       `json:"failed"`
	TotalUsers int       `json:"totalUsers"`
	Deadline   time.Time `json:"deadline"`
}
