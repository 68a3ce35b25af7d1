package lifecycle

import (
	"context"
	"math"
	"strconv"
	"strings"
	"unicode"

	"allocation-tracker/internal/allocationerrors"
	"allocation-tracker/internal/models"
	"allocation-tracker/internal/money"
	"allocation-tracker/utils"
)

// MaxImportRows bounds a single bulk import
const MaxImportRows = 2000

var maxPerUserKeys = []string{"maxqtyperuser", "maxperuser", "maxuser"}

// ImportItems creates one item per row in a DRAFT cycle. Rows are independent: a bad row is reported
// and skipped. Row numbers count the header as row 1.
func (s *LifecycleService) ImportItems(ctx context.Context, cycleID string, rows []map[string]string) (models.ImportReport, error) {
	cycle, err := s.GetCycle(ctx, cycleID)
	if err != nil {
		return models.ImportReport{}, err
	}
	if cycle.Status != models.CycleDraft {
		return models.ImportReport{}, allocationerrors.New(allocationerrors.ErrConflict, allocationerrors.ReasonCycleNotDraft,
			"Can only import items while cycle is DRAFT")
	}
	if len(rows) == 0 {
		return models.ImportReport{}, allocationerrors.Validation("No rows found in file")
	}
	if len(rows) > MaxImportRows {
		return models.ImportReport{}, allocationerrors.Validation("Too many rows (limit 2000)")
	}

	report := models.ImportReport{Errors: []models.ImportRowError{}}
	fail := func(i int, msg string) {
		report.Failed++
		report.Errors = append(report.Errors, models.ImportRowError{Row: i + 2, Error: msg})
	}

	for i, raw := range rows {
		row := normalizeRow(raw)

		in, msg := parseRow(row)
		if msg != "" {
			fail(i, msg)
			continue
		}
		if _, err := s.CreateItem(ctx, cycleID, in); err != nil {
			utils.Warn("lifecycle: import row failed", map[string]any{
				"cycle_id": cycleID,
				"row":      i + 2,
				"error":    err.Error(),
			})
			fail(i, "DB error")
			continue
		}
		report.Created++
	}

	utils.Info("lifecycle: items imported", map[string]any{
		"cycle_id": cycleID,
		"created":  report.Created,
		"failed":   report.Failed,
	})
	return report, nil
}

func parseRow(row map[string]string) (models.ItemInput, string) {
	name := strings.TrimSpace(row["name"])
	if name == "" {
		return models.ItemInput{}, "Missing name"
	}

	price, err := money.ParsePrice(row["price"])
	if err != nil {
		return models.ItemInput{}, "Invalid price"
	}

	total, ok := parseQty(row["totalqty"])
	if !ok || total < 1 {
		return models.ItemInput{}, "Invalid total qty"
	}

	in := models.ItemInput{Name: name, Price: price, TotalQty: total}
	if d := strings.TrimSpace(row["description"]); d != "" {
		in.Description = &d
	}

	for _, key := range maxPerUserKeys {
		raw, present := row[key]
		if !present || strings.TrimSpace(raw) == "" {
			continue
		}
		maxPer, ok := parseQty(raw)
		if !ok || maxPer < 1 {
			return models.ItemInput{}, "Invalid MaxQtyPerUser"
		}
		in.MaxQtyPerUser = &maxPer
		break
	}
	return in, ""
}

// normalizeRow lowercases header keys and drops everything but letters and digits,
// so "Total Qty" and "total_qty" both read as "totalqty"
func normalizeRow(raw map[string]string) map[string]string {
	row := make(map[string]string, len(raw))
	for k, v := range raw {
		var b strings.Builder
		for _, r := range strings.ToLower(k) {
			if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
				b.WriteRune(r)
			}
		}
		row[b.String()] = v
	}
	return row
}

// parseQty accepts "1,200" or "3.7" and floors fractional quantities
func parseQty(raw string) (int, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f > models.MaxQuantity {
		return 0, false
	}
	return int(math.Floor(f)), true
}
