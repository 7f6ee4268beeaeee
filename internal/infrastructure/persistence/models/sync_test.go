package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockflow/backend/internal/domain/sync"
)

func TestPurchaseOrderModelFromRecord_LineItems(t *testing.T) {
	syncedAt := time.Now()
	record := &sync.PurchaseOrderRecord{
		OrderNumber: "PO-1",
		SourceURL:   "https://erp.example.com/orders/1",
		IsActive:    true,
		LineItems: []sync.LineItem{
			{SKU: "SKU-1", QtyOrdered: 10, QtyReceived: 4, UnitPrice: decimal.NewFromInt(5)},
			{SKU: "SKU-2", QtyOrdered: 2},
		},
	}

	m := PurchaseOrderModelFromRecord(record, syncedAt)
	assert.Equal(t, "PO-1", m.OrderNumber)
	assert.True(t, m.IsActive)
	assert.Equal(t, syncedAt, m.SyncedAt)

	lines, err := m.Lines()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "SKU-1", lines[0].SKU)
	assert.Equal(t, float64(10), lines[0].QtyOrdered)
	assert.Equal(t, "SKU-2", lines[1].SKU)
}

func TestPurchaseOrderModelFromRecord_EmptyLines(t *testing.T) {
	m := PurchaseOrderModelFromRecord(&sync.PurchaseOrderRecord{
		OrderNumber: "PO-1",
		SourceURL:   "u",
	}, time.Now())

	assert.Equal(t, "[]", m.LineItems)
	lines, err := m.Lines()
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestAppProductModelFromRecord_CarriesEffectiveStock(t *testing.T) {
	record := &sync.ProductRecord{
		SKU:            "SKU-1",
		StockWarehouse: 7,
		EffectiveStock: 7,
		Cost:           decimal.NewFromFloat(2.5),
	}

	m := AppProductModelFromRecord(record, time.Now())
	assert.Equal(t, "SKU-1", m.SKU)
	// The app table carries only the derived stock figure.
	assert.Equal(t, float64(7), m.Stock)
	assert.Equal(t, "2.5", m.Cost.String())
}
