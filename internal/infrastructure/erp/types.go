package erp

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Number is a loose numeric JSON scalar. The ERP is inconsistent about
// numeric types: the same field may arrive as a number, a numeric
// string ("3.0000"), null, or be absent entirely. Anything that does
// not parse coerces to zero with Valid=false, so coercion happens once
// at the boundary instead of scattered downstream.
type Number struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler. It never fails; garbage
// input yields an invalid zero.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = Number{}
		return nil
	}
	s := string(b)
	if s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(b, &unquoted); err != nil {
			*n = Number{}
			return nil
		}
		s = unquoted
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*n = Number{}
		return nil
	}
	*n = Number{Value: f, Valid: true}
	return nil
}

// Float returns the parsed value, zero when invalid.
func (n Number) Float() float64 {
	if !n.Valid {
		return 0
	}
	return n.Value
}

// Decimal returns the parsed value as a decimal, zero when invalid.
func (n Number) Decimal() decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return decimal.NewFromFloat(n.Value)
}

// RawVendor is the documented raw node shape of one vendor.
type RawVendor struct {
	VendorID     string `json:"vendorId"`
	URL          string `json:"url"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	LeadTime     Number `json:"leadTime"`
	Terms        string `json:"terms"`
	Status       string `json:"status"`
	LastModified string `json:"lastModified"`
}

// RawProduct is the documented raw node shape of one product,
// including the five per-facility stock readings.
type RawProduct struct {
	ProductID       string `json:"productId"`
	URL             string `json:"url"`
	SKU             string `json:"sku"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Cost            Number `json:"cost"`
	Price           Number `json:"price"`
	ReorderPoint    Number `json:"reorderPoint"`
	ReorderQuantity Number `json:"reorderQuantity"`
	Status          string `json:"status"`
	LastModified    string `json:"lastModified"`

	QuantityWarehouse Number `json:"quantityWarehouse"`
	QuantityShowroom  Number `json:"quantityShowroom"`
	QuantityAnnex     Number `json:"quantityAnnex"`
	QuantityReturns   Number `json:"quantityReturns"`
	QuantityOverflow  Number `json:"quantityOverflow"`
}

// RawVendorRef is the embedded vendor reference on a purchase order.
type RawVendorRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// RawLineItem is one node of the nested line-item connection.
type RawLineItem struct {
	SKU              string `json:"sku"`
	ProductURL       string `json:"productUrl"`
	Description      string `json:"description"`
	QuantityOrdered  Number `json:"quantityOrdered"`
	QuantityReceived Number `json:"quantityReceived"`
	UnitPrice        Number `json:"unitPrice"`
	LineTotal        Number `json:"lineTotal"`
}

// RawLineConnection is the nested paginated connection carrying line
// items. The sync flattens it; line items beyond the first page are not
// followed because the ERP inlines up to 100 lines per order.
type RawLineConnection struct {
	Edges []struct {
		Node RawLineItem `json:"node"`
	} `json:"edges"`
}

// RawPurchaseOrder is the documented raw node shape of one purchase order.
type RawPurchaseOrder struct {
	OrderNumber  string            `json:"orderNumber"`
	URL          string            `json:"url"`
	OrderType    string            `json:"orderType"`
	Status       string            `json:"status"`
	Vendor       *RawVendorRef     `json:"vendor"`
	OrderDate    string            `json:"orderDate"`
	ExpectedDate string            `json:"expectedDate"`
	Subtotal     Number            `json:"subtotal"`
	Tax          Number            `json:"tax"`
	Total        Number            `json:"total"`
	PublicNotes  string            `json:"publicNotes"`
	PrivateNotes string            `json:"privateNotes"`
	Lines        RawLineConnection `json:"lines"`
}

// timestampLayouts are tried in order when parsing ERP date strings.
// The ERP mixes RFC3339 timestamps with its own non-padded M/D/YYYY.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/2006",
}

// parseTimestamp parses an ERP date string, returning nil when the
// value is empty or unrecognized.
func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
