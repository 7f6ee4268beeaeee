package erp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRawProduct() *RawProduct {
	var raw RawProduct
	// Unmarshal exercises the same Number coercion path production data goes through.
	err := json.Unmarshal([]byte(`{
		"productId": "P-100",
		"url": "https://erp.example.com/products/100",
		"sku": "WIDGET-1",
		"name": "Widget",
		"category": "Hardware",
		"cost": "2.5000",
		"price": 9.99,
		"reorderPoint": "3.0000",
		"reorderQuantity": 10.4,
		"status": "Active",
		"quantityWarehouse": 0,
		"quantityShowroom": 2,
		"quantityAnnex": 3,
		"quantityReturns": null,
		"quantityOverflow": "5"
	}`), &raw)
	if err != nil {
		panic(err)
	}
	return &raw
}

func TestTransformProduct_Basic(t *testing.T) {
	record, ok := TransformProduct(validRawProduct())
	require.True(t, ok)

	assert.Equal(t, "P-100", record.ERPProductID)
	assert.Equal(t, "https://erp.example.com/products/100", record.SourceURL)
	assert.Equal(t, "WIDGET-1", record.SKU)
	assert.Equal(t, "2.5", record.Cost.String())
	assert.Equal(t, "9.99", record.Price.String())

	// Reorder values arrive as decimal-noise strings and floats; both
	// are parsed then rounded to the nearest integer.
	assert.Equal(t, 3, record.ReorderPoint)
	assert.Equal(t, 10, record.ReorderQty)
}

func TestTransformProduct_StockSumWithZeroCoercion(t *testing.T) {
	record, ok := TransformProduct(validRawProduct())
	require.True(t, ok)

	// Warehouse 0, showroom 2, annex 3, returns null->0, overflow "5"->5.
	assert.Equal(t, float64(0), record.StockWarehouse)
	assert.Equal(t, float64(2), record.StockShowroom)
	assert.Equal(t, float64(3), record.StockAnnex)
	assert.Equal(t, float64(0), record.StockReturns)
	assert.Equal(t, float64(5), record.StockOverflow)

	// Warehouse is zero, so the effective stock is the facility sum.
	assert.Equal(t, float64(10), record.EffectiveStock)
}

func TestTransformProduct_WarehouseOverridesSum(t *testing.T) {
	raw := validRawProduct()
	raw.QuantityWarehouse = Number{Value: 7, Valid: true}

	record, ok := TransformProduct(raw)
	require.True(t, ok)

	// A non-zero warehouse reading wins over the 7+2+3+0+5 sum.
	assert.Equal(t, float64(7), record.EffectiveStock)
}

func TestTransformProduct_Exclusions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawProduct)
	}{
		{"missing product id", func(r *RawProduct) { r.ProductID = "" }},
		{"missing url", func(r *RawProduct) { r.URL = "" }},
		{"inactive status", func(r *RawProduct) { r.Status = "Inactive" }},
		{"inactive substring", func(r *RawProduct) { r.Status = "Marked INACTIVE by buyer" }},
		{"deprecating status", func(r *RawProduct) { r.Status = "Deprecating" }},
		{"deprecated status", func(r *RawProduct) { r.Status = "deprecated" }},
		{"deprecating category", func(r *RawProduct) { r.Category = "Deprecating - Do Not Order" }},
		{"inactive category", func(r *RawProduct) { r.Category = "inactive lines" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRawProduct()
			tt.mutate(raw)
			record, ok := TransformProduct(raw)
			assert.False(t, ok)
			assert.Nil(t, record)
		})
	}
}

func TestTransformProduct_ActiveStatusKept(t *testing.T) {
	raw := validRawProduct()
	raw.Status = "Active"
	raw.Category = "Hardware"
	_, ok := TransformProduct(raw)
	assert.True(t, ok)
}
