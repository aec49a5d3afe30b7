package db

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// prefixColumns 為join查詢替欄位清單加上表別名
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, part := range parts {
		parts[i] = alias + "." + part
	}
	return strings.Join(parts, ", ")
}

// numeric欄位以text取出後轉decimal, 避免精度損失
func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse numeric value %q: %w", s, err)
	}
	return d, nil
}
