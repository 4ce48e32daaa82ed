package composer

import (
	"fmt"
	"strconv"
	"time"

	"bukuinduk/internal/registry/stats"
)

var months = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// longDate renders t as "14 Juli 2025".
func longDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

func shortDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02-01-2006")
}

func optDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return shortDate(*t)
}

func num(v float64) string { return stats.Format2(v) }

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func yesNo(b bool) string {
	if b {
		return "Ya"
	}
	return "Tidak"
}

// statString renders one stats value for print.
func statString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case bool:
		return yesNo(x)
	default:
		return fmt.Sprint(x)
	}
}

// truncateHash shortens a signature hash for print.
func truncateHash(h string) string {
	const n = 16
	if len(h) <= n {
		return h
	}
	return h[:n]
}
