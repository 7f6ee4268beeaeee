package erp

import (
	"strings"

	"github.com/stockflow/backend/internal/domain/sync"
)

// dropshipSuffixes are literal order-number suffixes that mark a
// dropship order. A detected suffix is stripped from the displayed
// order number.
var dropshipSuffixes = []string{"-DS", "-DROP"}

// dropshipNoteMarkers are matched case-insensitively against the
// concatenated public and private notes. Note-only detection leaves
// the order number untouched.
var dropshipNoteMarkers = []string{"dropship", "drop ship"}

// DetectDropship applies the two independent dropship signals: a
// literal order-number suffix or a note marker, either sufficient.
// It returns the displayed order number (suffix stripped) and the flag.
func DetectDropship(orderNumber, publicNotes, privateNotes string) (string, bool) {
	for _, suffix := range dropshipSuffixes {
		if strings.HasSuffix(orderNumber, suffix) {
			return strings.TrimSuffix(orderNumber, suffix), true
		}
	}

	notes := strings.ToLower(publicNotes + " " + privateNotes)
	for _, marker := range dropshipNoteMarkers {
		if strings.Contains(notes, marker) {
			return orderNumber, true
		}
	}

	return orderNumber, false
}

// TransformPurchaseOrder maps one raw purchase-order node to a
// canonical record. The boolean is false when the node lacks identity.
// The line-item array is flattened from the nested connection and
// fully replaces whatever a prior sync stored for this order.
func TransformPurchaseOrder(raw *RawPurchaseOrder) (*sync.PurchaseOrderRecord, bool) {
	if raw.OrderNumber == "" || raw.URL == "" {
		return nil, false
	}

	displayNumber, isDropship := DetectDropship(raw.OrderNumber, raw.PublicNotes, raw.PrivateNotes)

	record := &sync.PurchaseOrderRecord{
		OrderNumber:  displayNumber,
		SourceURL:    raw.URL,
		OrderType:    raw.OrderType,
		Status:       raw.Status,
		OrderDate:    parseTimestamp(raw.OrderDate),
		ExpectedDate: parseTimestamp(raw.ExpectedDate),
		Subtotal:     raw.Subtotal.Decimal(),
		Tax:          raw.Tax.Decimal(),
		Total:        raw.Total.Decimal(),
		IsDropship:   isDropship,
		IsActive:     true,
	}

	if raw.Vendor != nil {
		record.VendorURL = raw.Vendor.URL
		record.VendorName = raw.Vendor.Name
	}

	record.LineItems = make([]sync.LineItem, 0, len(raw.Lines.Edges))
	for _, edge := range raw.Lines.Edges {
		line := edge.Node
		record.LineItems = append(record.LineItems, sync.LineItem{
			SKU:         line.SKU,
			ProductURL:  line.ProductURL,
			Description: line.Description,
			QtyOrdered:  line.QuantityOrdered.Float(),
			QtyReceived: line.QuantityReceived.Float(),
			UnitPrice:   line.UnitPrice.Decimal(),
			LineTotal:   line.LineTotal.Decimal(),
		})
	}

	return record, true
}
