package format

import (
	"fmt"
	"strings"
	"time"
)

// Rupees formats a whole-rupee amount for the storefront.
// Example: Rupees(12345) => "Rs. 12,345"
func Rupees(amount int) string {
	return "Rs. " + thousandSep(int64(amount))
}

// Rating formats a star rating with a single decimal, e.g. "4.5".
func Rating(r float64) string {
	return fmt.Sprintf("%.1f", r)
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	out := ""
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(c)
	}
	if neg {
		return "-" + out
	}
	return out
}

// Date formats a time in the storefront's short form.
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
