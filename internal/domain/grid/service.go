package grid

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"xfinance/internal/domain/columns"
	"xfinance/internal/domain/deadline"
	"xfinance/internal/domain/markers"
	"xfinance/internal/domain/status"
	"xfinance/internal/platform/logger"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidLimit       = errors.New("invalid limit")
	ErrStoreNotConfigured = errors.New("grid store not configured")
)

var (
	gridLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "xfinance_grid_load_duration_seconds",
		Help:    "Duración de la carga del grid (query + enriquecimiento).",
		Buckets: prometheus.DefBuckets,
	}, []string{"order"})
	gridRowsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "xfinance_grid_rows_returned_total",
		Help: "Filas devueltas por el grid.",
	})
)

const DefaultMaxLimit = 10000

// Store ejecuta SQL parametrizado y materializa filas como mapas alias => valor.
type Store interface {
	QueryRows(ctx context.Context, query string, args ...any) ([]map[string]any, error)
	CountRecords(ctx context.Context) (int, error)
}

// DeadlineEnricher calcula (y tal vez persiste) el prazo de una fila.
type DeadlineEnricher interface {
	Enrich(ctx context.Context, rec deadline.Record, today time.Time) deadline.Result
}

// Row es una fila de salida: solo campos visibles, marcadores y status.
type Row = map[string]any

type Options struct {
	// Zona usada para decidir "hoy".
	Location *time.Location
	MaxLimit int
}

type Service struct {
	store    Store
	perms    PermissionResolver
	catalog  *columns.Catalog
	builder  *Builder
	enricher DeadlineEnricher
	log      logger.Logger
	loc      *time.Location
	maxLimit int
	now      func() time.Time
}

func NewService(store Store, perms PermissionResolver, enricher DeadlineEnricher, catalog *columns.Catalog, log logger.Logger, opts Options) *Service {
	if catalog == nil {
		catalog = columns.Default()
	}
	if log == nil {
		log = logger.NewNop()
	}
	if enricher == nil {
		enricher = deadline.NewEnricher(nil, deadline.ModeOff, log)
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = DefaultMaxLimit
	}

	return &Service{
		store:    store,
		perms:    perms,
		catalog:  catalog,
		builder:  NewBuilder(catalog, perms),
		enricher: enricher,
		log:      log.With(map[string]any{"component": "grid"}),
		loc:      opts.Location,
		maxLimit: opts.MaxLimit,
		now:      time.Now,
	}
}

// Load es la única entrada para cargar el grid de un papel.
func (s *Service) Load(ctx context.Context, in BuildInput) ([]Row, error) {
	if in.Limit < 0 || in.Limit > s.maxLimit {
		return nil, ErrInvalidLimit
	}
	if in.AssignedTo < 0 {
		return nil, ErrInvalidInput
	}
	if in.Order == "" {
		in.Order = OrderNormal
	}

	start := time.Now()
	defer func() {
		gridLoadDuration.WithLabelValues(string(in.Order)).Observe(time.Since(start).Seconds())
	}()

	q, err := s.builder.Build(ctx, in)
	if err != nil {
		return nil, err
	}
	if q.Empty {
		s.log.Warn("sin permisos para el papel; grid vacío", map[string]any{"papel": in.Role})
		return []Row{}, nil
	}
	if s.store == nil {
		return nil, ErrStoreNotConfigured
	}

	s.log.Debug("query grid", map[string]any{
		"papel":  in.Role,
		"order":  string(in.Order),
		"limit":  in.Limit,
		"fields": len(q.Fields),
	})

	raw, err := s.store.QueryRows(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("load grid: %w", err)
	}

	today := deadline.DateOf(s.now().In(s.loc))
	out := make([]Row, 0, len(raw))
	for _, r := range raw {
		out = append(out, s.materialize(ctx, q, r, today))
	}

	gridRowsTotal.Add(float64(len(out)))
	return out, nil
}

// Count es el total de registros, sin filtro de permisos.
func (s *Service) Count(ctx context.Context) (int, error) {
	if s.store == nil {
		return 0, ErrStoreNotConfigured
	}
	return s.store.CountRecords(ctx)
}

// Column es la metadata que el cliente usa para pintar una columna.
type Column struct {
	Field    string `json:"field"`
	Display  string `json:"display"`
	Format   string `json:"format"`
	Editable bool   `json:"editable"`
	Width    int    `json:"width"`
	Type     string `json:"type"`
	Hidden   bool   `json:"hidden,omitempty"`
}

// Columns devuelve las columnas visibles del papel: primero en el orden
// por defecto del papel, después el resto de los permitidos.
func (s *Service) Columns(ctx context.Context, role string) ([]Column, error) {
	fields, err := s.perms.Resolve(ctx, role)
	if err != nil {
		return nil, err
	}

	out := make([]Column, 0, fields.Len())
	placed := make(map[string]struct{}, fields.Len())
	push := func(name string) {
		if _, ok := placed[name]; ok || !fields.Has(name) || isReservedAlias(name) {
			return
		}
		placed[name] = struct{}{}
		spec := s.catalog.Spec(name)
		out = append(out, Column{
			Field:    name,
			Display:  spec.Display,
			Format:   string(spec.Format),
			Editable: spec.Editable,
			Width:    spec.Width,
			Type:     string(spec.Align),
			Hidden:   spec.Hidden,
		})
	}

	for _, name := range columns.DefaultOrder(role) {
		push(name)
	}
	for _, name := range s.catalog.SortFields(fields.Names()) {
		push(name)
	}
	return out, nil
}

func (s *Service) materialize(ctx context.Context, q Query, raw map[string]any, today time.Time) Row {
	rec := deadline.Record{
		ID:         toInt64(raw[AuxID]),
		Inspection: raw[AuxInspection],
		Delivered:  raw[AuxDelivered],
		Billed:     raw[AuxBilled],
		Paid:       raw[AuxPaid],
		Stored:     raw[AuxStored],
	}
	res := s.enricher.Enrich(ctx, rec, today)

	row := make(Row, len(q.Fields)+len(markers.Channels)+len(status.Keys()))
	visible := make(map[string]any, len(q.Fields))
	for _, f := range q.Fields {
		row[f] = raw[f]
		visible[f] = raw[f]
	}
	if _, ok := row["prazo"]; ok {
		row["prazo"] = res.Value()
	}

	for _, ch := range markers.Channels {
		row[string(ch)] = int(toInt64(raw[string(ch)]))
	}

	status.Annotate(status.Input{
		Visible:   visible,
		Delivered: raw[AuxDelivered],
		Billed:    raw[AuxBilled],
	}, today).Apply(row)

	return row
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int16:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case []byte:
		i, _ := strconv.ParseInt(string(n), 10, 64)
		return i
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	default:
		return 0
	}
}
