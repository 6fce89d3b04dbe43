package renderer

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// naCell fills table cells whose value the provider never sent.
const naCell = "n/a"

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return naCell
	}
	return t.Format("2006-01-02 15:04")
}

func fmtTimePtr(t *time.Time) string {
	if t == nil {
		return naCell
	}
	return fmtTime(*t)
}

func fmtDecimal(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func fmtNullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return naCell
	}
	return fmtDecimal(d.Decimal)
}

func fmtPercent(d decimal.Decimal) string {
	s := d.StringFixed(2) + "%"
	if d.Sign() > 0 {
		return "+" + s
	}
	return s
}

func fmtNullPercent(d decimal.NullDecimal) string {
	if !d.Valid {
		return naCell
	}
	return fmtPercent(d.Decimal)
}

func fmtVolume(v *int64) string {
	if v == nil {
		return naCell
	}
	return fmt.Sprintf("%d", *v)
}

func strPtr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
