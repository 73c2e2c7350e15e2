package deadline

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Valores que el sistema legado usa como "sin fecha".
var absentSentinels = map[string]struct{}{
	"":           {},
	"-":          {},
	"--":         {},
	"0":          {},
	"none":       {},
	"null":       {},
	"nat":        {},
	"0000-00-00": {},
	"00/00/0000": {},
	"00/00/00":   {},
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02/01/2006",
	"02/01/06",
	"2006/01/02",
}

// ParseDate interpreta v como fecha de calendario.
// Nunca falla: cualquier valor no reconocible cuenta como ausente.
// La hora se descarta; el resultado es medianoche UTC del día.
func ParseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return DateOf(d), true
	case *time.Time:
		if d == nil || d.IsZero() {
			return time.Time{}, false
		}
		return DateOf(*d), true
	case []byte:
		return parseDateString(string(d))
	case string:
		return parseDateString(d)
	default:
		return time.Time{}, false
	}
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if _, ok := absentSentinels[strings.ToLower(s)]; ok {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() < 1900 {
			return time.Time{}, false
		}
		return DateOf(t), true
	}
	return time.Time{}, false
}

// DateOf trunca t al día de calendario (en su propia zona) como medianoche UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween devuelve to - from en días enteros de calendario.
func DaysBetween(from, to time.Time) int {
	return int(math.Round(DateOf(to).Sub(DateOf(from)).Hours() / 24))
}

// ParseStored lee el prazo guardado. Solo cuentan enteros.
func ParseStored(v any) (int, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case *int:
		if n == nil {
			return 0, false
		}
		return *n, true
	case []byte:
		return ParseStored(string(n))
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
