package helpers

import (
	"time"

	model "allocation-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// Request/Response DTOs
type SelectionRequest struct {
	ItemID string `json:"itemId"`
	Qty    int    `json:"qty"`
}

type SubmitClaimsRequest struct {
	Selections     []SelectionRequest `json:"selections" binding:"required"`
	IdempotencyKey string             `json:"idempotencyKey" binding:"required"`
}

// ToBatch converts the request body into the domain claim batch
func (r SubmitClaimsRequest) ToBatch() model.ClaimBatch {
	batch := model.ClaimBatch{IdempotencyKey: r.IdempotencyKey, Selections: make([]model.Selection, 0, len(r.Selections))}
	for _, s := range r.Selections {
		batch.Selections = append(batch.Selections, model.Selection{ItemID: s.ItemID, Qty: s.Qty})
	}
	return batch
}

type CreateCycleRequest struct {
	Name            string     `json:"name" binding:"required"`
	MaxItemsPerUser int        `json:"maxItemsPerUser" binding:"required,gte=1,lte=2147483647"`
	OpenAt          *time.Time `json:"openAt"`
	CloseAt         *time.Time `json:"closeAt"`
}

func (r CreateCycleRequest) ToInput() model.CycleInput {
	return model.CycleInput{Name: r.Name, MaxItemsPerUser: r.MaxItemsPerUser, OpenAt: r.OpenAt, CloseAt: r.CloseAt}
}

type TransitionRequest struct {
	Action string `json:"action" binding:"required"`
}

type CreateItemRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	TotalQty      int             `json:"totalQty" binding:"required,gte=1,lte=2147483647"`
	MaxQtyPerUser *int            `json:"maxQtyPerUser" binding:"omitempty,gte=1,lte=2147483647"`
}

func (r CreateItemRequest) ToInput() model.ItemInput {
	return model.ItemInput{Name: r.Name, Description: r.Description, Price: r.Price, TotalQty: r.TotalQty, MaxQtyPerUser: r.MaxQtyPerUser}
}

// UpdateItemRequest carries a partial item update; clearMaxQtyPerUser removes the per-user cap
type UpdateItemRequest struct {
	Name               *string          `json:"name"`
	Description        *string          `json:"description"`
	Price              *decimal.Decimal `json:"price"`
	TotalQty           *int             `json:"totalQty" binding:"omitempty,gte=1,lte=2147483647"`
	MaxQtyPerUser      *int             `json:"maxQtyPerUser" binding:"omitempty,gte=1,lte=2147483647"`
	ClearMaxQtyPerUser bool             `json:"clearMaxQtyPerUser"`
}

func (r UpdateItemRequest) ToPatch() model.ItemPatch {
	return model.ItemPatch{
		Name:               r.Name,
		Description:        r.Description,
		Price:              r.Price,
		TotalQty:           r.TotalQty,
		MaxQtyPerUser:      r.MaxQtyPerUser,
		ClearMaxQtyPerUser: r.ClearMaxQtyPerUser,
	}
}

type BidResponse struct {
	ID        string             `json:"id"`
	Qty       int                `json:"qty"`
	CreatedAt string             `json:"createdAt"`
	Item      model.ItemSummary  `json:"item"`
	Cycle     model.CycleSummary `json:"cycle"`
}

// NewBidResponses formats bid views for the wire
func NewBidResponses(views []model.BidView) []BidResponse {
	out := make([]BidResponse, 0, len(views))
	for _, v := range views {
		out = append(out, BidResponse{
			ID:        v.ID,
			Qty:       v.Qty,
			CreatedAt: v.CreatedAt.UTC().Format(time.RFC3339),
			Item:      v.Item,
			Cycle:     v.Cycle,
		})
	}
	return out
}
