package deadline

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"xfinance/internal/platform/logger"
)

var writeBacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "xfinance_deadline_writebacks_total",
	Help: "Persistencias del prazo calculado, por resultado.",
}, []string{"result"})

// Store persiste el prazo de un registro. Debe ser idempotente.
type Store interface {
	SaveDeadline(ctx context.Context, recordID int64, days int) error
}

type Mode string

const (
	ModeSync Mode = "sync"
	ModeOff  Mode = "off"
)

// Enricher calcula el prazo y, si corresponde, lo persiste.
// Un fallo al persistir se loguea y se descarta: la lectura nunca falla por eso.
type Enricher struct {
	store Store
	mode  Mode
	log   logger.Logger
}

func NewEnricher(store Store, mode Mode, log logger.Logger) *Enricher {
	if log == nil {
		log = logger.NewNop()
	}
	if store == nil {
		mode = ModeOff
	}
	if mode != ModeSync {
		mode = ModeOff
	}
	return &Enricher{
		store: store,
		mode:  mode,
		log:   log.With(map[string]any{"component": "deadline"}),
	}
}

// Enrich evalúa rec con la fecha today y persiste cuando Evaluate lo pide.
func (e *Enricher) Enrich(ctx context.Context, rec Record, today time.Time) Result {
	res := Evaluate(rec, today)
	if !res.Persist || res.Days == nil {
		return res
	}

	if e.mode != ModeSync || rec.ID <= 0 {
		writeBacksTotal.WithLabelValues("skipped").Inc()
		return res
	}

	if err := e.store.SaveDeadline(ctx, rec.ID, *res.Days); err != nil {
		writeBacksTotal.WithLabelValues("error").Inc()
		e.log.Error("falló persistir prazo", map[string]any{
			"id_princ": rec.ID,
			"prazo":    *res.Days,
			"error":    err,
		})
		return res
	}

	writeBacksTotal.WithLabelValues("ok").Inc()
	return res
}
