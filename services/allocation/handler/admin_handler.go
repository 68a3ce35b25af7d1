package handler

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"allocation-tracker/internal/allocationerrors"
	"allocation-tracker/internal/lifecycle"
	model "allocation-tracker/internal/models"
	"allocation-tracker/services/allocation/helpers"
	"allocation-tracker/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=admin_handler.go -destination=mock_admin_services.go -package=handler

var invalidInput = string(allocationerrors.ReasonInvalidInput)

type LifecycleServiceInterface interface {
	CreateCycle(ctx context.Context, in model.CycleInput) (model.Cycle, error)
	ListCycles(ctx context.Context) ([]model.Cycle, error)
	GetCycle(ctx context.Context, cycleID string) (model.Cycle, error)
	Transition(ctx context.Context, cycleID string, action lifecycle.Action) (model.Cycle, error)
	ListItems(ctx context.Context, cycleID string) ([]model.Item, error)
	CreateItem(ctx context.Context, cycleID string, in model.ItemInput) (model.Item, error)
	UpdateItem(ctx context.Context, itemID string, patch model.ItemPatch) (model.Item, error)
	DeleteItem(ctx context.Context, itemID string) error
	ImportItems(ctx context.Context, cycleID string, rows []map[string]string) (model.ImportReport, error)
}

type ReportsServiceInterface interface {
	Results(ctx context.Context, cycleID string) (model.CycleResults, error)
	NotifyWinners(ctx context.Context, cycleID string) (model.NotifyReport, error)
}

// AdminHandler serves the cycle, item and report endpoints
type AdminHandler struct {
	cycles  LifecycleServiceInterface
	reports ReportsServiceInterface
	timeout time.Duration
}

// NewAdminHandler creates a new AdminHandler instance
func NewAdminHandler(cycles LifecycleServiceInterface, reports ReportsServiceInterface, timeout time.Duration) *AdminHandler {
	return &AdminHandler{cycles: cycles, reports: reports, timeout: timeout}
}

// ListCyclesHandler handles GET /admin/cycles
func (h *AdminHandler) ListCyclesHandler(c *gin.Context) {
	ctx, cancel := helpers.RequestContext(c, h.timeout)
	defer cancel()

	cycles, err := h.cycles.ListCycles(ctx)
	if err != nil {
		helpers.RespondError(c, "ListCyclesHandler", "error listing cycles", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, cycles, "cycles retrieved successfully")
}

// CreateCycleHandler handles POST /admin/cycles
func (h *AdminHandler) CreateCycleHandler(c *gin.Context) {
	var req helpers.CreateCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateCycleHandler", err)
		return
	}
	ctx, cancel := helpers.RequestContext(c, h.timeout)
	defer cancel()

	cycle, err := h.cycles.CreateCycle(ctx, req.ToInput())
	if err != nil {
		helpers.RespondError(c, "CreateCycleHandler", "failed to create cycle", err, map[string]any{"name": req.Name})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, cycle, "cycle created successfully")
	helpers.LogSuccess("CreateCycleHandler", "cycle created successfully", map[string]any{"cycle_id": cycle.ID})
}

// GetCycleHandler handles GET /admin/cycles/:cycle_id
func (h *AdminHandler) GetCycleHandler(c *gin.Context) {
	cycleID := c.Param("cycle_id")
	ctx, cancel := helpers.RequestContext(c, h.timeout)
	defer cancel()

	cycle, err := h.cycles.GetCycle(ctx, cycleID)
	if err != nil {
		helpers.RespondError(c, "GetCycleHandler", "error retrieving cycle", err, map[string]any{"cycle_id": cycleID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, cycle, "cycle retrieved successfully")
}

// TransitionCycleHandler handles POST /admin/cycles/:cycle_id/actions
func (h *AdminHandler) TransitionCycleHandler(c *gin.Context) {
	cycleID := c.Param("cycle_id")
	var req helpers.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "TransitionCycleHandler", err)
		return
	}
	ctx, cancel := helpers.RequestContext(c, h.timeout)
	defer cancel()

	cycle, err := h.cycles.Transition(ctx, cycleID, lifecycle.Action(req.Action))
	if err != nil {
		helpers.RespondError(c, "TransitionCycleHandler", "transition rejected", err, map[string]any{"cycle_id": cycleID, "action": req.Action})
		return
	}

	utils.JSONResponse(c, http.StatusOK, cycle, "cycle updated successfully")
	helpers.LogSuccess("TransitionCycleHandler", "cycle updated successfully", map[string]any{
		"cycle_id": cycleID,
		"status":   string(cycle.Status),
	})
}

// ListItemsHandler handles GET /admin/cycles/:cycle_id/items
func (h *AdminHandler) ListItemsHandler(c *gin.Context) {
	cycleID := c.Param("cycle_id")
	ctx, cancel := helpers.RequestContext(c, h.timeout)
	defer cancel()

	items, err := h.cycles.ListItems(ctx, cycleID)
	if err != nil {
		helpers.RespondError(c, "ListItemsHandler", "error listing items", err, map[string]any{"cycle_id": cycleID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, items, "items retrieved successfully")
}

// CreateItemHandler handles POST /admin/cycles/:cycle_id/items
func (h *AdminHandler) CreateItemHandler(c *gin.Context) {
	cycleID := c.Param("cycle_id")
	var req helpers.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateItemHandler", err)
		return
	}
	ctx, cancel := helpers.RequestContext(c, h.timeout)
	defer cancel()

	item, err := h.cycles.CreateItem(ctx, cycleID, req.ToInput())
	if err != nil {
		helpers.RespondError(c, "CreateItemHandler", "failed to create item", err, map[string]any{"cycle_id": cycleID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, item, "item created successfully")
	helpers.LogSuccess("CreateItemHandler", "item created successfully", map[string]any{"cycle_id": cycleID, "item_id": item.ID})
}

// ImportItemsHandler handles POST /admin/cycles/:cycle_id/items/import with a multipart CSV "file"
func (h *AdminHandler) ImportItemsHandler(c *gin.Context) {
	cycleID := c.Param("cycle_id")
	header, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "No file uploaded", invalidInput)
		utils.Warn("ImportItemsHandler: missing file", map[string]any{"cycle_id": cycleID, "error": err.Error()})
		return
	}
	f, err := header.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "Failed to parse file", invalidInput)
		return
	}
	defer f.Close()

	rows, err := ParseCSVRows(f)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "Failed to parse file", invalidInput)
		utils.Warn("ImportItemsHandler: unreadable file", map[string]any{"cycle_id": cycleID, "file": header.Filename, "error": err.Error()})
		return
	}

	ctx, cancel := helpers.RequestContext(c, h.timeout)
	defer cancel()
	report, err := h.cycles.ImportItems(ctx, cycleID, rows)
	if err != nil {
		helpers.RespondError(c, "ImportItemsHandler", "import rejected", err, map[string]any{"cycle_id": cycleID, "rows": len(rows)})
		return
	}

	utils.JSONResponse(c, http.StatusOK, report, "items imported")
	helpers.LogSuccess("ImportItemsHandler", "items imported", map[string]any{
		"cycle_id": cycleID,
		"created":  report.Created,
		"failed":   report.Failed,
	})
}

// UpdateItemHandler handles PATCH /admin/items/:item_id
func (h *AdminHandler) UpdateItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	var req helpers.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateItemHandler", err)
		return
	}
	ctx, cancel := helpers.RequestContext(c, h.timeout)
	defer cancel()

	item, err := h.cycles.UpdateItem(ctx, itemID, req.ToPatch())
	if err != nil {
		helpers.RespondError(c, "UpdateItemHandler", "failed to update item", err, map[string]any{"item_id": itemID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, item, "item updated successfully")
	helpers.LogSuccess("UpdateItemHandler", "item updated successfully", map[string]any{"item_id": itemID})
}

// DeleteItemHandler handles DELETE /admin/items/:item_id
func (h *AdminHandler) DeleteItemHandler(c *gin.Context) {
	itemID := c.Param("item_id")
	ctx, cancel := helpers.RequestContext(c, h.timeout)
	defer cancel()

	if err := h.cycles.DeleteItem(ctx, itemID); err != nil {
		helpers.RespondError(c, "DeleteItemHandler", "failed to delete item", err, map[string]any{"item_id": itemID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"success": true}, "item deleted successfully")
	helpers.LogSuccess("DeleteItemHandler", "item deleted successfully", map[string]any{"item_id": itemID})
}

// ResultsHandler handles GET /admin/cycles/:cycle_id/results
func (h *AdminHandler) ResultsHandler(c *gin.Context) {
	results, ok := h.results(c, "ResultsHandler")
	if !ok {
		return
	}
	utils.JSONResponse(c, http.StatusOK, results, "results retrieved successfully")
}

// ExportHandler handles GET /admin/cycles/:cycle_id/export. It serves the results dataset as a download.
func (h *AdminHandler) ExportHandler(c *gin.Context) {
	results, ok := h.results(c, "ExportHandler")
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="cycle-%s-results.json"`, results.Cycle.ID))
	c.JSON(http.StatusOK, results)
	helpers.LogSuccess("ExportHandler", "results exported", map[string]any{"cycle_id": results.Cycle.ID})
}

func (h *AdminHandler) results(c *gin.Context, handlerName string) (model.CycleResults, bool) {
	cycleID := c.Param("cycle_id")
	ctx, cancel := helpers.RequestContext(c, h.timeout)
	defer cancel()

	results, err := h.reports.Results(ctx, cycleID)
	if err != nil {
		helpers.RespondError(c, handlerName, "results unavailable", err, map[string]any{"cycle_id": cycleID})
		return model.CycleResults{}, false
	}
	return results, true
}

// NotifyWinnersHandler handles POST /admin/cycles/:cycle_id/notify-winners
func (h *AdminHandler) NotifyWinnersHandler(c *gin.Context) {
	cycleID := c.Param("cycle_id")
	ctx, cancel := helpers.RequestContext(c, h.timeout)
	defer cancel()

	report, err := h.reports.NotifyWinners(ctx, cycleID)
	if err != nil {
		helpers.RespondError(c, "NotifyWinnersHandler", "notification rejected", err, map[string]any{"cycle_id": cycleID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, report, "winners notified")
	helpers.LogSuccess("NotifyWinnersHandler", "winners notified", map[string]any{
		"cycle_id": cycleID,
		"sent":     report.Sent,
		"failed":   report.Failed,
	})
}

// ParseCSVRows reads a header line followed by data lines into one map per data line
func ParseCSVRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	rows := make([]map[string]string, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		row := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(record) {
				row[key] = record[i]
			} else {
				row[key] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
