package client

import (
	"fmt"
	"strings"
)

// FormatPrice renders a price the way the storefront displays it:
// es-ES euro formatting, e.g. 1234.5 -> "1.234,50 €".
func FormatPrice(price float64) string {
	s := fmt.Sprintf("%.2f", price)

	intPart, fracPart, _ := strings.Cut(s, ".")

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s%s,%s €", sign, b.String(), fracPart)
}
