package erp

import (
	"github.com/stockflow/backend/internal/domain/sync"
)

// TransformVendor maps one raw vendor node to its canonical row plus
// the simplified legacy row keyed by name. The boolean is false when
// the node lacks identity.
func TransformVendor(raw *RawVendor) (*sync.VendorRecord, *sync.LegacyVendorRecord, bool) {
	if raw.VendorID == "" || raw.URL == "" {
		return nil, nil, false
	}

	canonical := &sync.VendorRecord{
		ERPVendorID:  raw.VendorID,
		SourceURL:    raw.URL,
		Name:         raw.Name,
		Email:        raw.Email,
		Phone:        raw.Phone,
		LeadTimeDays: roundToInt(raw.LeadTime),
		PaymentTerms: raw.Terms,
		Status:       raw.Status,
		LastModified: parseTimestamp(raw.LastModified),
	}

	// Older parts of the application join vendors on name, so a
	// denormalized row is kept alongside the canonical one.
	legacy := &sync.LegacyVendorRecord{
		Name:  raw.Name,
		Email: raw.Email,
		Phone: raw.Phone,
		Terms: raw.Terms,
	}

	return canonical, legacy, true
}
