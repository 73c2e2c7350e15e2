package router

import (
	"database/sql"
	"net/http"
	"time"

	_ "xfinance/docs"
	mem "xfinance/internal/adapters/storage/memory"
	pg "xfinance/internal/adapters/storage/postgres"
	"xfinance/internal/domain/actions"
	"xfinance/internal/domain/deadline"
	"xfinance/internal/domain/grid"
	"xfinance/internal/domain/markers"
	"xfinance/internal/domain/permissions"
	"xfinance/internal/middleware"
	"xfinance/internal/platform/config"
	"xfinance/internal/platform/logger"
	"xfinance/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, permisos y marcadores in-memory
	// y el grid responde 503.
	DB *sql.DB

	// Opcional: propaga invalidaciones de permisos a otras instancias.
	Broadcaster permissions.Broadcaster

	Config *config.Config
	Logger logger.Logger
}

// Services expone los servicios armados, para la CLI y el bus de invalidación.
type Services struct {
	Permissions *permissions.Service
	Grid        *grid.Service
	Markers     *markers.Service
	Actions     *actions.Service
}

func NewRouter(opts Options) http.Handler {
	h, _ := Build(opts)
	return h
}

// Build arma servicios y rutas.
func Build(opts Options) (http.Handler, *Services) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{
			PermissionCacheSize: 32,
			DeadlineWriteBack:   config.WriteBackSync,
			Location:            time.Local,
			GridMaxLimit:        grid.DefaultMaxLimit,
			JWTCookieName:       "access_token",
		}
	}

	svcs := buildServices(opts.DB, opts.Broadcaster, cfg, log)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	r.Use(middleware.AuthContext(opts.AuthVerifier, cfg.JWTCookieName))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	permissions.RegisterRoutes(r, svcs.Permissions)
	grid.RegisterRoutes(r, svcs.Grid)
	markers.RegisterRoutes(r, svcs.Markers)
	actions.RegisterRoutes(r, svcs.Actions)

	return r, svcs
}

func buildServices(db *sql.DB, bc permissions.Broadcaster, cfg *config.Config, log logger.Logger) *Services {
	var (
		permRepo      permissions.Repository
		markersRepo   markers.Repository
		gridStore     grid.Store
		deadlineStore deadline.Store
		actionsRepo   actions.Repository
	)

	if db != nil {
		permRepo = pg.NewPermissionsRepo(db)
		markersRepo = pg.NewMarkersRepo(db)
		gridStore = pg.NewGridRepo(db)
		deadlineStore = pg.NewDeadlineRepo(db)
		actionsRepo = pg.NewActionsRepo(db)
	} else {
		log.Warn("sin DB: permisos y marcadores en memoria, grid deshabilitado", nil)
		permRepo = mem.NewPermissionsRepo()
		markersRepo = mem.NewMarkersRepo()
	}

	permSvc := permissions.NewService(permRepo, cfg.PermissionCacheSize, log)
	if bc != nil {
		permSvc.WithBroadcaster(bc)
	}

	mode := deadline.ModeSync
	if cfg.DeadlineWriteBack == config.WriteBackOff {
		mode = deadline.ModeOff
	}
	enricher := deadline.NewEnricher(deadlineStore, mode, log)

	gridSvc := grid.NewService(gridStore, permSvc, enricher, nil, log, grid.Options{
		Location: cfg.Location,
		MaxLimit: cfg.GridMaxLimit,
	})

	return &Services{
		Permissions: permSvc,
		Grid:        gridSvc,
		Markers:     markers.NewService(markersRepo, log),
		Actions:     actions.NewService(actionsRepo, log),
	}
}
