package deadline

import "time"

// Record son las fechas crudas de un registro (como vienen de la base o de un cliente).
type Record struct {
	ID         int64
	Inspection any
	Delivered  any
	Billed     any
	Paid       any
	Stored     any
}

// Rule identifica qué regla decidió el resultado.
type Rule int

const (
	RuleNone Rule = iota
	RuleStoredFinal
	RulePaidNotDelivered
	RuleBilledNotPaid
	RuleNotDelivered
	RuleAwaitingBilling
	RuleFinalized
)

func (r Rule) String() string {
	switch r {
	case RuleStoredFinal:
		return "stored_final"
	case RulePaidNotDelivered:
		return "paid_not_delivered"
	case RuleBilledNotPaid:
		return "billed_not_paid"
	case RuleNotDelivered:
		return "not_delivered"
	case RuleAwaitingBilling:
		return "awaiting_billing"
	case RuleFinalized:
		return "finalized"
	default:
		return "none"
	}
}

// Result es el prazo calculado. Days nil = ausente.
type Result struct {
	Days    *int
	Persist bool
	Rule    Rule
}

// Value devuelve Days como any (nil si ausente), listo para la fila de salida.
func (r Result) Value() any {
	if r.Days == nil {
		return nil
	}
	return *r.Days
}

func days(n int) *int { return &n }

// Evaluate aplica las reglas en orden; gana la primera que aplica.
//
//  1. prazo guardado > 0 y pago          => guardado, sin persistir
//  2. pago y no entregue                  => ausente
//  3. enviado y no pago                   => hoy - envio (ausente si < 0)
//  4. no entregue                         => hoy - inspeção, o ausente
//  5. entregue, no enviado y no pago      => ausente (esperando envio)
//  6. pago y entregue                     => entregue - inspeção; si >= 0 se persiste
//
// La regla 3 no mira la entrega a propósito: ordena por antigüedad del envio.
func Evaluate(rec Record, today time.Time) Result {
	inspection, hasInspection := ParseDate(rec.Inspection)
	delivered, hasDelivered := ParseDate(rec.Delivered)
	billed, hasBilled := ParseDate(rec.Billed)
	_, hasPaid := ParseDate(rec.Paid)
	today = DateOf(today)

	if stored, ok := ParseStored(rec.Stored); ok && stored > 0 && hasPaid {
		return Result{Days: days(stored), Rule: RuleStoredFinal}
	}

	if hasPaid && !hasDelivered {
		return Result{Rule: RulePaidNotDelivered}
	}

	if hasBilled && !hasPaid {
		n := DaysBetween(billed, today)
		if n < 0 {
			return Result{Rule: RuleBilledNotPaid}
		}
		return Result{Days: days(n), Rule: RuleBilledNotPaid}
	}

	if !hasDelivered {
		if !hasInspection {
			return Result{Rule: RuleNotDelivered}
		}
		return Result{Days: days(DaysBetween(inspection, today)), Rule: RuleNotDelivered}
	}

	if !hasBilled && !hasPaid {
		return Result{Rule: RuleAwaitingBilling}
	}

	// Aquí: entregue y pago.
	if !hasInspection {
		return Result{Rule: RuleFinalized}
	}
	n := DaysBetween(inspection, delivered)
	if n < 0 {
		return Result{Rule: RuleFinalized}
	}
	return Result{Days: days(n), Persist: true, Rule: RuleFinalized}
}
