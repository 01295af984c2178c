package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Price formats a decimal amount with the currency's symbol, e.g.
// Price(1234.5, "USD") => "$1,234.50". Unknown currencies use their code.
func Price(amount float64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	minor := int64(math.Round(amount * 100))
	neg := minor < 0
	if neg {
		minor = -minor
	}
	body := thousandSep(minor/100) + fmt.Sprintf(".%02d", minor%100)

	var out string
	switch currency {
	case "USD":
		out = "$" + body
	case "EUR":
		out = "€" + body
	case "GBP":
		out = "£" + body
	case "JPY":
		out = "¥" + thousandSep(int64(math.Round(math.Abs(amount))))
	default:
		out = strings.TrimSpace(currency + " " + body)
	}
	if neg {
		return "-" + out
	}
	return out
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// Date formats t in a short human form. Zero times render empty.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// ISODate formats t as YYYY-MM-DD for datetime attributes.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
