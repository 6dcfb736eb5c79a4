package utils_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/payhub_backend/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "39.99", want: "39.99"},
		{raw: "50", want: "50"},
		{raw: " 0.01 ", want: "0.01"},
		{raw: "1.500", want: "1.5"},
		{raw: "", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "0", wantErr: true},
		{raw: "-10.00", wantErr: true},
		{raw: "1.005", wantErr: true},
		{raw: "1e9", want: "1000000000"},
		{raw: "99999999999999999.99", want: "99999999999999999.99"},
		{raw: "100000000000000000.00", wantErr: true},
		{raw: "1e17", wantErr: true},
		{raw: "1e100000", wantErr: true},
		{raw: "1e8000000", wantErr: true},
		{raw: "1e-8000000", wantErr: true},
		{raw: "0." + strings.Repeat("0", 40) + "1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := utils.ParseAmount(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, utils.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "960.01", utils.FormatAmount(decimal.RequireFromString("960.01")))
	assert.Equal(t, "50.00", utils.FormatAmount(decimal.NewFromInt(50)))
	assert.Equal(t, "-0.50", utils.FormatAmount(decimal.RequireFromString("-0.5")))
}

func TestParseAmount_HugeExponentReturnsQuickly(t *testing.T) {
	start := time.Now()
	_, err := utils.ParseAmount("1e8000000")
	require.ErrorIs(t, err, utils.ErrInvalidAmount)
	assert.Less(t, time.Since(start), time.Second)
}
