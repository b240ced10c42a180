package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hundred million boundary", "100000000", "1.00亿"},
		{"large amount", "120000000", "1.20亿"},
		{"ten thousand boundary", "10000", "1.00万"},
		{"fifty million", "50000000", "5000.00万"},
		{"below ten thousand", "9999.5", "9999.50"},
		{"zero", "0", "0.00"},
		{"negative stays raw", "-250000000", "-250000000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := decimal.NewFromString(tt.in)
			if err != nil {
				t.Fatalf("bad fixture %q: %v", tt.in, err)
			}
			if got := FormatAmount(v); got != tt.want {
				t.Errorf("FormatAmount(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatNullAmount(t *testing.T) {
	if got := FormatNullAmount(decimal.NullDecimal{}); got != "0" {
		t.Errorf("missing value = %q, want \"0\"", got)
	}
	v := decimal.NullDecimal{Decimal: decimal.NewFromInt(30000), Valid: true}
	if got := FormatNullAmount(v); got != "3.00万" {
		t.Errorf("present value = %q, want \"3.00万\"", got)
	}
}
