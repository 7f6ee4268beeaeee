package erp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRawVendor() *RawVendor {
	return &RawVendor{
		VendorID:     "V-9",
		URL:          "https://erp.example.com/vendors/9",
		Name:         "Acme Supply",
		Email:        "orders@acme.example.com",
		Phone:        "555-0101",
		LeadTime:     Number{Value: 14.0, Valid: true},
		Terms:        "Net 30",
		Status:       "Active",
		LastModified: "2025-06-15T10:30:00Z",
	}
}

func TestTransformVendor(t *testing.T) {
	canonical, legacy, ok := TransformVendor(validRawVendor())
	require.True(t, ok)

	assert.Equal(t, "V-9", canonical.ERPVendorID)
	assert.Equal(t, "https://erp.example.com/vendors/9", canonical.SourceURL)
	assert.Equal(t, "Acme Supply", canonical.Name)
	assert.Equal(t, 14, canonical.LeadTimeDays)
	assert.Equal(t, "Net 30", canonical.PaymentTerms)
	require.NotNil(t, canonical.LastModified)

	// The legacy row carries the simplified name-keyed shape.
	assert.Equal(t, "Acme Supply", legacy.Name)
	assert.Equal(t, "orders@acme.example.com", legacy.Email)
	assert.Equal(t, "555-0101", legacy.Phone)
	assert.Equal(t, "Net 30", legacy.Terms)
}

func TestTransformVendor_MissingIdentity(t *testing.T) {
	raw := validRawVendor()
	raw.VendorID = ""
	_, _, ok := TransformVendor(raw)
	assert.False(t, ok)

	raw = validRawVendor()
	raw.URL = ""
	_, _, ok = TransformVendor(raw)
	assert.False(t, ok)
}
