// Package status calcula marcas visuales de una fila del grid.
// Son solo para presentación: no afectan orden ni persistencia.
package status

import (
	"time"

	"xfinance/internal/domain/deadline"
)

type Tag string

const (
	TagNone  Tag = ""
	TagPast  Tag = "past"
	TagToday Tag = "today"
)

// PayoutFields son las fechas de pago pendiente que reciben Tag.
var PayoutFields = []string{"dt_acerto", "dt_guy_pago", "dt_guy_dpago"}

const (
	KeyPrefix    = "status_"
	KeyHighlight = "highlight"
)

// Input trae los valores ya visibles para el papel y las fechas auxiliares.
// Visible contiene solo campos permitidos; un campo ausente no genera Tag.
type Input struct {
	Visible   map[string]any
	Delivered any
	Billed    any
}

// Tags es el resultado por fila.
type Tags struct {
	Payout    map[string]Tag
	Highlight bool
}

// Annotate es una función pura de la fila y del día de hoy.
func Annotate(in Input, today time.Time) Tags {
	today = deadline.DateOf(today)

	out := Tags{Payout: make(map[string]Tag, len(PayoutFields))}
	for _, f := range PayoutFields {
		v, ok := in.Visible[f]
		if !ok {
			out.Payout[f] = TagNone
			continue
		}
		out.Payout[f] = classify(v, today)
	}

	_, hasDelivered := deadline.ParseDate(in.Delivered)
	_, hasBilled := deadline.ParseDate(in.Billed)
	out.Highlight = hasDelivered && !hasBilled

	return out
}

func classify(v any, today time.Time) Tag {
	d, ok := deadline.ParseDate(v)
	if !ok {
		return TagNone
	}
	switch {
	case d.Before(today):
		return TagPast
	case d.Equal(today):
		return TagToday
	default:
		return TagNone
	}
}

// Apply escribe las marcas en la fila de salida.
func (t Tags) Apply(row map[string]any) {
	for _, f := range PayoutFields {
		row[KeyPrefix+f] = string(t.Payout[f])
	}
	row[KeyHighlight] = t.Highlight
}

// Keys lista las claves que Apply agrega a una fila.
func Keys() []string {
	out := make([]string, 0, len(PayoutFields)+1)
	for _, f := range PayoutFields {
		out = append(out, KeyPrefix+f)
	}
	return append(out, KeyHighlight)
}
