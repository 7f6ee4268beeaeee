package erp

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValue float64
		wantValid bool
	}{
		{"plain number", `3.5`, 3.5, true},
		{"integer", `42`, 42, true},
		{"zero", `0`, 0, true},
		{"negative", `-7.25`, -7.25, true},
		{"numeric string", `"3.0000"`, 3, true},
		{"integer string", `"15"`, 15, true},
		{"null", `null`, 0, false},
		{"empty string", `""`, 0, false},
		{"garbage string", `"n/a"`, 0, false},
		{"boolean", `true`, 0, false},
		{"object", `{"v":1}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			err := json.Unmarshal([]byte(tt.input), &n)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, n.Valid)
			assert.Equal(t, tt.wantValue, n.Float())
		})
	}
}

func TestNumberUnmarshalJSON_AbsentField(t *testing.T) {
	var holder struct {
		Qty Number `json:"qty"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &holder))
	assert.False(t, holder.Qty.Valid)
	assert.Equal(t, float64(0), holder.Qty.Float())
}

func TestNumberDecimal(t *testing.T) {
	var n Number
	require.NoError(t, json.Unmarshal([]byte(`"19.99"`), &n))
	assert.Equal(t, "19.99", n.Decimal().String())

	var invalid Number
	require.NoError(t, json.Unmarshal([]byte(`null`), &invalid))
	assert.True(t, invalid.Decimal().IsZero())
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *time.Time
	}{
		{"empty", "", nil},
		{"unrecognized", "last tuesday", nil},
		{
			"rfc3339",
			"2025-06-15T10:30:00Z",
			timePtr(time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)),
		},
		{
			"no zone",
			"2025-06-15T10:30:00",
			timePtr(time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)),
		},
		{
			"date only",
			"2025-06-15",
			timePtr(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)),
		},
		{
			"erp non-padded",
			"6/5/2025",
			timePtr(time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTimestamp(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "want %v, got %v", tt.want, got)
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
