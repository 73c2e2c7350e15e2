package permissions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"

	"xfinance/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "xfinance_permission_cache_hits_total",
		Help: "Resoluciones de permisos servidas desde el cache.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "xfinance_permission_cache_misses_total",
		Help: "Resoluciones de permisos que fueron a la base.",
	})
	cacheInvalidationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "xfinance_permission_cache_invalidations_total",
		Help: "Invalidaciones completas del cache de permisos.",
	})
)

const DefaultCacheSize = 32

// loadTimeout acota la lectura de permi compartida entre llamadores.
const loadTimeout = 10 * time.Second

// Service resuelve qué campos ve cada papel.
// El cache es de la instancia: cada Service tiene el suyo.
type Service struct {
	repo  Repository
	log   logger.Logger
	cache *lru.Cache[string, FieldSet]
	group singleflight.Group

	// gen cambia en cada Invalidate; una carga iniciada antes no repuebla el cache.
	mu  sync.Mutex
	gen uint64

	broadcaster Broadcaster
}

func NewService(repo Repository, cacheSize int, log logger.Logger) *Service {
	if cacheSize < 1 {
		cacheSize = DefaultCacheSize
	}
	if log == nil {
		log = logger.NewNop()
	}
	// lru.New solo falla con tamaño <= 0.
	cache, _ := lru.New[string, FieldSet](cacheSize)

	return &Service{
		repo:  repo,
		log:   log.With(map[string]any{"component": "permissions"}),
		cache: cache,
	}
}

// WithBroadcaster conecta la propagación de invalidaciones (p.ej. Redis).
func (s *Service) WithBroadcaster(b Broadcaster) *Service {
	s.broadcaster = b
	return s
}

// Resolve devuelve los campos visibles para role.
// Un papel sin filas en permi devuelve conjunto vacío (warning, no error).
func (s *Service) Resolve(ctx context.Context, role string) (FieldSet, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		s.log.Warn("papel vacío; sin permisos", nil)
		return FieldSet{}, nil
	}

	if fs, ok := s.cache.Get(role); ok {
		cacheHitsTotal.Inc()
		return fs, nil
	}
	cacheMissesTotal.Inc()

	gen := s.generation()
	key := strconv.FormatUint(gen, 10) + "|" + role

	// la carga compartida no depende de la cancelación de quien la inició;
	// cada llamador deja de esperar con su propio ctx.
	ch := s.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		cols, err := s.repo.ColumnsForRole(loadCtx, role)
		if err != nil {
			return FieldSet{}, err
		}

		fs := NewFieldSet(cols...)
		if fs.IsEmpty() {
			s.log.Warn("ningún permiso encontrado para el papel", map[string]any{"papel": role})
		} else {
			s.log.Debug("permisos cargados", map[string]any{"papel": role, "columnas": fs.Len()})
		}

		s.mu.Lock()
		if s.gen == gen {
			s.cache.Add(role, fs)
		}
		s.mu.Unlock()

		return fs, nil
	})

	select {
	case <-ctx.Done():
		return FieldSet{}, fmt.Errorf("resolve permissions for %q: %w", role, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return FieldSet{}, fmt.Errorf("resolve permissions for %q: %w", role, res.Err)
		}
		return res.Val.(FieldSet), nil
	}
}

// Invalidate vacía el cache local por completo.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.gen++
	s.cache.Purge()
	s.mu.Unlock()

	cacheInvalidationsTotal.Inc()
	s.log.Info("cache de permisos limpio", nil)
}

// InvalidateAll invalida local y avisa a las demás instancias.
// El fallo del aviso se devuelve, pero el cache local ya quedó limpio.
func (s *Service) InvalidateAll(ctx context.Context) error {
	s.Invalidate()
	if s.broadcaster == nil {
		return nil
	}
	if err := s.broadcaster.PublishInvalidate(ctx); err != nil {
		s.log.Error("no se pudo propagar la invalidación", map[string]any{"error": err})
		return err
	}
	return nil
}

func (s *Service) CanView(ctx context.Context, role, field string) (bool, error) {
	fs, err := s.Resolve(ctx, role)
	if err != nil {
		return false, err
	}
	return fs.Has(field), nil
}

// Info devuelve el resumen de permisos del papel.
func (s *Service) Info(ctx context.Context, role string) (Info, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return Info{}, ErrInvalidInput
	}
	fs, err := s.Resolve(ctx, role)
	if err != nil {
		return Info{}, err
	}
	return buildInfo(role, fs), nil
}

// Roles lista los papeles con filas en permi (sin cache).
func (s *Service) Roles(ctx context.Context) ([]string, error) {
	return s.repo.Roles(ctx)
}

func (s *Service) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}
