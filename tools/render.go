package tools

import (
	"fmt"
	"strconv"
	"strings"
)

// formatINR renders a fee as a rupee amount with thousands grouping
// and no fractional part, e.g. 250000 -> "₹250,000".
func formatINR(amount float64) string {
	n := int64(amount + 0.5)
	neg := n < 0
	if neg {
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	if neg {
		return fmt.Sprintf("-₹%s", b.String())
	}
	return fmt.Sprintf("₹%s", b.String())
}
