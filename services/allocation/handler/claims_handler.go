package handler

import (
	"context"
	"net/http"
	"time"

	model "allocation-tracker/internal/models"
	"allocation-tracker/services/allocation/helpers"
	"allocation-tracker/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=claims_handler.go -destination=mock_claims_service.go -package=handler

// ClaimsServiceInterface is the allocation service used by ClaimsHandler
type ClaimsServiceInterface interface {
	SubmitClaims(ctx context.Context, userID string, batch model.ClaimBatch) (model.ClaimResult, error)
	ListUserBids(ctx context.Context, userID, cycleID string) ([]model.BidView, error)
	OpenCatalog(ctx context.Context) ([]model.CycleCatalog, error)
}

type ClaimsHandler struct {
	service ClaimsServiceInterface
	timeout time.Duration
}

// NewClaimsHandler creates a new ClaimsHandler instance
func NewClaimsHandler(service ClaimsServiceInterface, timeout time.Duration) *ClaimsHandler {
	return &ClaimsHandler{service: service, timeout: timeout}
}

// SubmitClaimsHandler handles POST /bids
func (h *ClaimsHandler) SubmitClaimsHandler(c *gin.Context) {
	var req helpers.SubmitClaimsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SubmitClaimsHandler", err)
		return
	}

	userID, _ := helpers.CurrentUser(c)
	ctx, cancel := helpers.RequestContext(c, h.timeout)
	defer cancel()

	result, err := h.service.SubmitClaims(ctx, userID, req.ToBatch())
	if err != nil {
		helpers.RespondError(c, "SubmitClaimsHandler", "claim batch rejected", err, map[string]any{
			"user_id":         userID,
			"idempotency_key": req.IdempotencyKey,
			"selections":      len(req.Selections),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, result, "claims recorded successfully")
	helpers.LogSuccess("SubmitClaimsHandler", "claims recorded successfully", map[string]any{
		"user_id":          userID,
		"cycle_id":         result.CycleID,
		"claimed_in_cycle": result.ClaimedInCycle,
	})
}

// ListBidsHandler handles GET /bids?cycleId=
func (h *ClaimsHandler) ListBidsHandler(c *gin.Context) {
	userID, _ := helpers.CurrentUser(c)
	cycleID := c.Query("cycleId")
	ctx, cancel := helpers.RequestContext(c, h.timeout)
	defer cancel()

	views, err := h.service.ListUserBids(ctx, userID, cycleID)
	if err != nil {
		helpers.RespondError(c, "ListBidsHandler", "error retrieving bids", err, map[string]any{"user_id": userID, "cycle_id": cycleID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponses(views), "bids retrieved successfully")
	helpers.LogSuccess("ListBidsHandler", "bids retrieved successfully", map[string]any{
		"user_id": userID,
		"count":   len(views),
	})
}

// OpenCyclesHandler handles GET /cycles/open
func (h *ClaimsHandler) OpenCyclesHandler(c *gin.Context) {
	ctx, cancel := helpers.RequestContext(c, h.timeout)
	defer cancel()

	catalog, err := h.service.OpenCatalog(ctx)
	if err != nil {
		helpers.RespondError(c, "OpenCyclesHandler", "error retrieving open cycles", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, catalog, "open cycles retrieved successfully")
}
