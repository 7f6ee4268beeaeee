package erp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDropship(t *testing.T) {
	tests := []struct {
		name         string
		orderNumber  string
		publicNotes  string
		privateNotes string
		wantNumber   string
		wantDropship bool
	}{
		{"no signals", "PO-1001", "", "", "PO-1001", false},
		{"ds suffix stripped", "PO-1001-DS", "", "", "PO-1001", true},
		{"drop suffix stripped", "PO-1001-DROP", "", "", "PO-1001", true},
		{"lowercase suffix not matched", "PO-1001-ds", "", "", "PO-1001-ds", false},
		{"public note marker", "PO-1001", "This is a DropShip order", "", "PO-1001", true},
		{"private note marker", "PO-1001", "", "handle as drop ship", "PO-1001", true},
		{"marker split across fields not matched", "PO-1001", "drop", "ship", "PO-1001", false},
		{"note detection keeps number", "PO-1001", "dropship", "", "PO-1001", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotNumber, gotDropship := DetectDropship(tt.orderNumber, tt.publicNotes, tt.privateNotes)
			assert.Equal(t, tt.wantNumber, gotNumber)
			assert.Equal(t, tt.wantDropship, gotDropship)
		})
	}
}

func validRawPurchaseOrder() *RawPurchaseOrder {
	return &RawPurchaseOrder{
		OrderNumber: "PO-2001",
		URL:         "https://erp.example.com/orders/2001",
		OrderType:   "Standard",
		Status:      "Issued",
		Vendor: &RawVendorRef{
			Name: "Acme Supply",
			URL:  "https://erp.example.com/vendors/9",
		},
		OrderDate:    "2025-05-01",
		ExpectedDate: "2025-05-20",
		Subtotal:     Number{Value: 100, Valid: true},
		Tax:          Number{Value: 8.25, Valid: true},
		Total:        Number{Value: 108.25, Valid: true},
		Lines: RawLineConnection{
			Edges: []struct {
				Node RawLineItem `json:"node"`
			}{
				{Node: RawLineItem{
					SKU:              "WIDGET-1",
					ProductURL:       "https://erp.example.com/products/100",
					QuantityOrdered:  Number{Value: 10, Valid: true},
					QuantityReceived: Number{Value: 4, Valid: true},
					UnitPrice:        Number{Value: 5, Valid: true},
					LineTotal:        Number{Value: 50, Valid: true},
				}},
				{Node: RawLineItem{
					SKU:             "WIDGET-2",
					QuantityOrdered: Number{Value: 5, Valid: true},
					UnitPrice:       Number{Value: 10, Valid: true},
					LineTotal:       Number{Value: 50, Valid: true},
				}},
			},
		},
	}
}

func TestTransformPurchaseOrder(t *testing.T) {
	record, ok := TransformPurchaseOrder(validRawPurchaseOrder())
	require.True(t, ok)

	assert.Equal(t, "PO-2001", record.OrderNumber)
	assert.Equal(t, "https://erp.example.com/orders/2001", record.SourceURL)
	assert.Equal(t, "Acme Supply", record.VendorName)
	assert.Equal(t, "https://erp.example.com/vendors/9", record.VendorURL)
	assert.Equal(t, "108.25", record.Total.String())
	assert.False(t, record.IsDropship)
	assert.True(t, record.IsActive)
	require.NotNil(t, record.OrderDate)

	// Line items are flattened out of the nested connection in order.
	require.Len(t, record.LineItems, 2)
	assert.Equal(t, "WIDGET-1", record.LineItems[0].SKU)
	assert.Equal(t, float64(10), record.LineItems[0].QtyOrdered)
	assert.Equal(t, float64(4), record.LineItems[0].QtyReceived)
	assert.Equal(t, "WIDGET-2", record.LineItems[1].SKU)
}

func TestTransformPurchaseOrder_DropshipSuffix(t *testing.T) {
	raw := validRawPurchaseOrder()
	raw.OrderNumber = "PO-2001-DS"

	record, ok := TransformPurchaseOrder(raw)
	require.True(t, ok)
	assert.True(t, record.IsDropship)
	// The suffix never reaches the displayed order number.
	assert.Equal(t, "PO-2001", record.OrderNumber)
}

func TestTransformPurchaseOrder_DropshipNotes(t *testing.T) {
	raw := validRawPurchaseOrder()
	raw.PrivateNotes = "Vendor will DROP SHIP directly to customer"

	record, ok := TransformPurchaseOrder(raw)
	require.True(t, ok)
	assert.True(t, record.IsDropship)
	assert.Equal(t, "PO-2001", record.OrderNumber)
}

func TestTransformPurchaseOrder_MissingVendor(t *testing.T) {
	raw := validRawPurchaseOrder()
	raw.Vendor = nil

	record, ok := TransformPurchaseOrder(raw)
	require.True(t, ok)
	assert.Empty(t, record.VendorURL)
	assert.Empty(t, record.VendorName)
}

func TestTransformPurchaseOrder_MissingIdentity(t *testing.T) {
	raw := validRawPurchaseOrder()
	raw.OrderNumber = ""
	_, ok := TransformPurchaseOrder(raw)
	assert.False(t, ok)

	raw = validRawPurchaseOrder()
	raw.URL = ""
	_, ok = TransformPurchaseOrder(raw)
	assert.False(t, ok)
}
