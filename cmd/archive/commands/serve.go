package commands

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"appeal-archive/internal/auth"
	"appeal-archive/internal/logging"
	"appeal-archive/internal/web"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the archive web server",
		Long: `Run the archive web server. The schema is created and the demo data
and first administrator are seeded on an empty database before the server
starts listening. SIGINT or SIGTERM shuts the server down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}
}

func runServe(ctx context.Context, opts *rootOptions) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.InsecureSecret() {
		log.Warn("SECRET_KEY is not set, using the development default")
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("open database")
		return err
	}
	defer store.Close()

	res, err := provision(ctx, store, cfg)
	if err != nil {
		log.WithError(err).Error("provision database")
		return err
	}
	log.WithFields(logrus.Fields{
		"dialect": cfg.Dialect(),
		"seeded":  res.Seeded,
		"admin":   res.AdminCreated,
	}).Info("database ready")

	var sessions auth.SessionStore
	if cfg.RedisURL != "" {
		rdb, err := auth.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Error("connect redis")
			return err
		}
		defer rdb.Close()
		sessions = auth.NewRedisSessions(rdb)
		log.Info("sessions stored in redis")
	}

	handler, err := web.New(web.Deps{Config: &cfg, Log: log, Store: store, Sessions: sessions})
	if err != nil {
		return err
	}

	errLog := log.WriterLevel(logrus.WarnLevel)
	defer errLog.Close()
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorLog:     stdlog.New(errLog, "", 0),
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server stopped")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
		return err
	}
	return nil
}
