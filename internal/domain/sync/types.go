package sync

import (
	"time"

	"github.com/shopspring/decimal"
)

// DataType identifies one of the three independently synced object graphs.
type DataType string

const (
	DataTypeVendors        DataType = "vendors"
	DataTypeProducts       DataType = "products"
	DataTypePurchaseOrders DataType = "purchase_orders"
)

// AllDataTypes lists the sync stages in execution order. Vendors run
// first because products and purchase orders reference vendor identity.
var AllDataTypes = []DataType{
	DataTypeVendors,
	DataTypeProducts,
	DataTypePurchaseOrders,
}

// ParseDataType validates a caller-supplied type tag.
func ParseDataType(s string) (DataType, error) {
	switch DataType(s) {
	case DataTypeVendors, DataTypeProducts, DataTypePurchaseOrders:
		return DataType(s), nil
	}
	return "", NewDomainError("INVALID_SYNC_TYPE", "unknown sync type: "+s)
}

// ProductRecord is the canonical representation of an ERP product.
// Products that are inactive or deprecating never become records; the
// transformer excludes them before any stock computation.
type ProductRecord struct {
	ERPProductID string
	SourceURL    string
	SKU          string
	Name         string
	Description  string
	Category     string
	Cost         decimal.Decimal
	Price        decimal.Decimal
	ReorderPoint int
	ReorderQty   int

	// Per-facility stock readings, coerced to zero when the source
	// value is missing or non-numeric.
	StockWarehouse float64
	StockShowroom  float64
	StockAnnex     float64
	StockReturns   float64
	StockOverflow  float64

	// EffectiveStock is the warehouse reading when non-zero (the
	// warehouse is ground truth for reorder decisions), otherwise the
	// five-facility sum.
	EffectiveStock float64

	Status       string
	LastModified *time.Time
}

// VendorRecord is the canonical representation of an ERP vendor,
// keyed by its source URL.
type VendorRecord struct {
	ERPVendorID  string
	SourceURL    string
	Name         string
	Email        string
	Phone        string
	LeadTimeDays int
	PaymentTerms string
	Status       string
	LastModified *time.Time
}

// LegacyVendorRecord is the simplified row kept in the legacy
// name-keyed vendor table. The denormalization is deliberate: older
// parts of the application join on vendor name.
type LegacyVendorRecord struct {
	Name  string
	Email string
	Phone string
	Terms string
}

// LineItem is one purchase-order line. Each sync fully replaces the
// line-item array for an order; there is no incremental merge.
type LineItem struct {
	SKU         string          `json:"sku"`
	ProductURL  string          `json:"productUrl,omitempty"`
	Description string          `json:"description,omitempty"`
	QtyOrdered  float64         `json:"qtyOrdered"`
	QtyReceived float64         `json:"qtyReceived"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// PurchaseOrderRecord is the canonical representation of an ERP
// purchase order, keyed by its source URL.
type PurchaseOrderRecord struct {
	// OrderNumber is the displayed id. When a dropship suffix was
	// detected on the raw id it has already been stripped here.
	OrderNumber  string
	SourceURL    string
	OrderType    string
	Status       string
	VendorURL    string
	VendorName   string
	OrderDate    *time.Time
	ExpectedDate *time.Time
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
	LineItems    []LineItem
	IsDropship   bool
	IsActive     bool
}

// Result reports the outcome of one sync stage. Duration is in
// milliseconds to keep the report JSON-serializable as plain numbers.
type Result struct {
	DataType  DataType `json:"dataType"`
	Success   bool     `json:"success"`
	ItemCount int      `json:"itemCount"`
	Duration  int64    `json:"duration"`
	Error     string   `json:"error,omitempty"`
}

// Report aggregates the per-type results of one run. A report exists
// whenever the orchestrator itself did not fail before producing it;
// callers must inspect the per-type Success flags.
type Report struct {
	Results       []Result  `json:"results"`
	TotalDuration int64     `json:"totalDuration"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewResult builds a stage result from its raw measurements.
func NewResult(dt DataType, count int, elapsed time.Duration, err error) Result {
	r := Result{
		DataType:  dt,
		Success:   err == nil,
		ItemCount: count,
		Duration:  elapsed.Milliseconds(),
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}
