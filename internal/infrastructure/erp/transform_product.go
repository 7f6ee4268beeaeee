package erp

import (
	"math"
	"strings"

	"github.com/stockflow/backend/internal/domain/sync"
)

// excludedStatusMarkers flag products that must never reach the store.
// Matched case-insensitively as substrings against both status and
// category, before any stock computation, so excluded products never
// contribute to aggregates.
var excludedStatusMarkers = []string{"inactive", "deprecat"}

// TransformProduct maps one raw product node to a canonical record.
// The second return value is false when the node is excluded: missing
// identity, or an inactive/deprecating lifecycle status.
func TransformProduct(raw *RawProduct) (*sync.ProductRecord, bool) {
	if raw.ProductID == "" || raw.URL == "" {
		return nil, false
	}
	if matchesExcludedStatus(raw.Status) || matchesExcludedStatus(raw.Category) {
		return nil, false
	}

	warehouse := raw.QuantityWarehouse.Float()
	total := warehouse +
		raw.QuantityShowroom.Float() +
		raw.QuantityAnnex.Float() +
		raw.QuantityReturns.Float() +
		raw.QuantityOverflow.Float()

	// The warehouse is ground truth for reorder decisions: its
	// non-zero reading takes precedence over the aggregate.
	effective := total
	if warehouse != 0 {
		effective = warehouse
	}

	return &sync.ProductRecord{
		ERPProductID:   raw.ProductID,
		SourceURL:      raw.URL,
		SKU:            raw.SKU,
		Name:           raw.Name,
		Description:    raw.Description,
		Category:       raw.Category,
		Cost:           raw.Cost.Decimal(),
		Price:          raw.Price.Decimal(),
		ReorderPoint:   roundToInt(raw.ReorderPoint),
		ReorderQty:     roundToInt(raw.ReorderQuantity),
		StockWarehouse: warehouse,
		StockShowroom:  raw.QuantityShowroom.Float(),
		StockAnnex:     raw.QuantityAnnex.Float(),
		StockReturns:   raw.QuantityReturns.Float(),
		StockOverflow:  raw.QuantityOverflow.Float(),
		EffectiveStock: effective,
		Status:         raw.Status,
		LastModified:   parseTimestamp(raw.LastModified),
	}, true
}

func matchesExcludedStatus(s string) bool {
	lower := strings.ToLower(s)
	for _, marker := range excludedStatusMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// roundToInt tolerates decimal noise in source values ("3.0000").
func roundToInt(n Number) int {
	return int(math.Round(n.Float()))
}
