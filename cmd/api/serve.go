package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"xfinance/internal/adapters/auth/jwtauth"
	"xfinance/internal/adapters/cache/redisbus"
	"xfinance/internal/platform/logger"
	"xfinance/internal/ports/auth"
	"xfinance/internal/router"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	if z, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = z.Zap().Sync() }()
	}

	db, err := openDB(cfg, log, cfg.MigrateOnStart)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	// sin verifier => modo dev con headers X-Debug-*
	var verifier auth.AuthVerifier
	if !cfg.DevAuthHeaders {
		verifier = jwtauth.NewVerifier(cfg.JWTSecret)
	} else {
		log.Warn("AUTH_DEV_HEADERS activo: papel tomado de X-Debug-Role", nil)
	}

	opts := router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Config:       cfg,
		Logger:       log,
	}

	var bus *redisbus.Bus
	if cfg.RedisAddr != "" {
		client, err := redisbus.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Error("redis no disponible; invalidación solo local", map[string]any{"error": err})
		} else {
			defer client.Close()
			bus = redisbus.New(client, cfg.RedisChannel, log)
			opts.Broadcaster = bus
		}
	}

	handler, svcs := router.Build(opts)

	if bus != nil {
		go func() {
			if err := bus.Run(ctx, svcs.Permissions); err != nil {
				log.Error("bus de invalidación detenido", map[string]any{"error": err})
			}
		}()
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return serveHTTP(ctx, srv, log, cfg.ShutdownTimeout)
}

// serveHTTP atiende hasta que ctx termina y luego apaga con gracia.
// Un fallo al escuchar se devuelve sin esperar a ctx.
func serveHTTP(ctx context.Context, srv *http.Server, log logger.Logger, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
