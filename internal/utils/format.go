package utils

import "github.com/shopspring/decimal"

var (
	yi  = decimal.New(1, 8) // 1亿
	wan = decimal.New(1, 4) // 1万
)

// FormatAmount renders a raw CNY amount the way the board displays money：
// 亿 above 1e8, 万 above 1e4, otherwise the plain value with two decimals.
func FormatAmount(v decimal.Decimal) string {
	switch {
	case v.GreaterThanOrEqual(yi):
		return v.Div(yi).StringFixed(2) + "亿"
	case v.GreaterThanOrEqual(wan):
		return v.Div(wan).StringFixed(2) + "万"
	default:
		return v.StringFixed(2)
	}
}

// FormatNullAmount is FormatAmount for optional values; missing renders "0".
func FormatNullAmount(v decimal.NullDecimal) string {
	if !v.Valid {
		return "0"
	}
	return FormatAmount(v.Decimal)
}
