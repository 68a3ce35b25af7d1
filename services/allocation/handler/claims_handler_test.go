package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"allocation-tracker/internal/allocationerrors"
	model "allocation-tracker/internal/models"
	"allocation-tracker/services/allocation/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// asUser stands in for the auth middleware
func asUser(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(helpers.UserIDKey, userID)
		c.Set(helpers.RoleKey, role)
		c.Next()
	}
}

func encodeBody(t *testing.T, body any) []byte {
	t.Helper()
	if s, ok := body.(string); ok {
		return []byte(s)
	}
	b, err := json.Marshal(body)
	require.NoError(t, err)
	return b
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// Test SubmitClaimsHandler
func TestSubmitClaimsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockClaimsServiceInterface(ctrl)
	handler := NewClaimsHandler(mockService, time.Second)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(asUser("user-1", "STAFF"))
	router.POST("/bids", handler.SubmitClaimsHandler)

	key := uuid.NewString()
	validBody := helpers.SubmitClaimsRequest{
		IdempotencyKey: key,
		Selections:     []helpers.SelectionRequest{{ItemID: "A", Qty: 2}},
	}
	wantBatch := model.ClaimBatch{IdempotencyKey: key, Selections: []model.Selection{{ItemID: "A", Qty: 2}}}

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
		expectedReason string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:        "success",
			requestBody: validBody,
			mockSetup: func() {
				mockService.EXPECT().
					SubmitClaims(gomock.Any(), "user-1", wantBatch).
					Return(model.ClaimResult{
						CycleID:         "c1",
						Bids:            []model.Bid{{ID: "b1", UserID: "user-1", ItemID: "A", CycleID: "c1", Qty: 2}},
						Items:           []model.ItemSnapshot{{ID: "A", AllocatedQty: 2, TotalQty: 5}},
						ClaimedInCycle:  2,
						MaxItemsPerUser: 3,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "claims recorded successfully",
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, "c1", data["cycleId"])
				require.Equal(t, 2.0, data["claimedInCycle"])
				require.Equal(t, 3.0, data["maxItemsPerUser"])
				items := data["items"].([]any)
				require.Equal(t, 2.0, items[0].(map[string]any)["allocatedQty"])
			},
		},
		{
			name:           "invalid_json",
			requestBody:    `{invalid json}`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
			expectedReason: "invalid_input",
		},
		{
			name:           "missing_idempotency_key",
			requestBody:    helpers.SubmitClaimsRequest{Selections: []helpers.SelectionRequest{{ItemID: "A", Qty: 1}}},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "item_cap_exceeded",
			requestBody: validBody,
			mockSetup: func() {
				mockService.EXPECT().SubmitClaims(gomock.Any(), "user-1", wantBatch).
					Return(model.ClaimResult{}, allocationerrors.New(allocationerrors.ErrPolicyViolation, allocationerrors.ReasonItemCapExceeded, "Limit for Laptop is 2 per user"))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "Limit for Laptop is 2 per user",
			expectedReason: "item_cap_exceeded",
		},
		{
			name:        "duplicate_submission",
			requestBody: validBody,
			mockSetup: func() {
				mockService.EXPECT().SubmitClaims(gomock.Any(), "user-1", wantBatch).
					Return(model.ClaimResult{}, allocationerrors.New(allocationerrors.ErrDuplicateSubmission, allocationerrors.ReasonDuplicateRequest, "Duplicate request"))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Duplicate request",
			expectedReason: "duplicate_request",
		},
		{
			name:        "unknown_item",
			requestBody: validBody,
			mockSetup: func() {
				mockService.EXPECT().SubmitClaims(gomock.Any(), "user-1", wantBatch).
					Return(model.ClaimResult{}, allocationerrors.New(allocationerrors.ErrNotFound, allocationerrors.ReasonItemNotFound, "Item A not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Item A not found",
			expectedReason: "item_not_found",
		},
		{
			name:        "transient_failure",
			requestBody: validBody,
			mockSetup: func() {
				mockService.EXPECT().SubmitClaims(gomock.Any(), "user-1", wantBatch).
					Return(model.ClaimResult{}, allocationerrors.New(allocationerrors.ErrTransientFailure, allocationerrors.ReasonTransientFailure, "please retry"))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedMsg:    "please retry",
			expectedReason: "transient_failure",
		},
		{
			name:        "storage_error_is_hidden",
			requestBody: validBody,
			mockSetup: func() {
				mockService.EXPECT().SubmitClaims(gomock.Any(), "user-1", wantBatch).
					Return(model.ClaimResult{}, errors.New("pq: connection refused to 10.0.0.5"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "internal server error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/bids", bytes.NewReader(encodeBody(t, tc.requestBody)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)
			resp := decodeResponse(t, w)
			require.Contains(t, resp["message"], tc.expectedMsg)
			if tc.expectedReason != "" {
				require.Equal(t, tc.expectedReason, resp["reason"])
			}
			if w.Code >= http.StatusInternalServerError {
				require.NotContains(t, w.Body.String(), "10.0.0.5")
			}
			if tc.validateData != nil && w.Code == http.StatusCreated {
				tc.validateData(t, resp["data"].(map[string]any))
			}
		})
	}
}

// Test ListBidsHandler
func TestListBidsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockClaimsServiceInterface(ctrl)
	handler := NewClaimsHandler(mockService, time.Second)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(asUser("user-1", "STAFF"))
	router.GET("/bids", handler.ListBidsHandler)

	created := time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name           string
		query          string
		mockSetup      func()
		expectedStatus int
		expectedCount  int
	}{
		{
			name:  "all_cycles",
			query: "",
			mockSetup: func() {
				mockService.EXPECT().ListUserBids(gomock.Any(), "user-1", "").Return([]model.BidView{
					{ID: "b2", Qty: 1, CreatedAt: created, Item: model.ItemSummary{ID: "B", Name: "Mouse", Price: decimal.RequireFromString("15")}, Cycle: model.CycleSummary{ID: "c1", Name: "April", Status: model.CycleOpen}},
					{ID: "b1", Qty: 2, CreatedAt: created, Item: model.ItemSummary{ID: "A", Name: "Laptop", Price: decimal.RequireFromString("1200.5")}, Cycle: model.CycleSummary{ID: "c1", Name: "April", Status: model.CycleOpen}},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:  "filtered_empty",
			query: "?cycleId=c9",
			mockSetup: func() {
				mockService.EXPECT().ListUserBids(gomock.Any(), "user-1", "c9").Return([]model.BidView{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:  "service_error",
			query: "",
			mockSetup: func() {
				mockService.EXPECT().ListUserBids(gomock.Any(), "user-1", "").Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			req := httptest.NewRequest(http.MethodGet, "/bids"+tc.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)
			resp := decodeResponse(t, w)
			if w.Code != http.StatusOK {
				return
			}
			data := resp["data"].([]any)
			require.Len(t, data, tc.expectedCount)
			if tc.expectedCount > 0 {
				first := data[0].(map[string]any)
				require.Equal(t, "2026-04-02T10:30:00Z", first["createdAt"])
				require.Equal(t, "Mouse", first["item"].(map[string]any)["name"])
				require.Equal(t, "OPEN", first["cycle"].(map[string]any)["status"])
			}
		})
	}
}

// Test OpenCyclesHandler
func TestOpenCyclesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockClaimsServiceInterface(ctrl)
	handler := NewClaimsHandler(mockService, 0)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/cycles/open", handler.OpenCyclesHandler)

	mockService.EXPECT().OpenCatalog(gomock.Any()).Return([]model.CycleCatalog{
		{Cycle: model.Cycle{ID: "c1", Name: "April", Status: model.CycleOpen, MaxItemsPerUser: 3}, Items: []model.Item{{ID: "A", CycleID: "c1", Name: "Laptop", TotalQty: 5, AllocatedQty: 1}}},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/cycles/open", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp["data"].([]any)
	require.Len(t, data, 1)
	entry := data[0].(map[string]any)
	require.Equal(t, "c1", entry["cycle"].(map[string]any)["id"])
	require.Len(t, entry["items"].([]any), 1)
}
