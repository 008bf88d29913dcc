package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/stagex-boxoffice/internal/config"
	"github.com/iliyamo/stagex-boxoffice/internal/database"
	"github.com/iliyamo/stagex-boxoffice/internal/handler"
	"github.com/iliyamo/stagex-boxoffice/internal/logger"
	"github.com/iliyamo/stagex-boxoffice/internal/middleware"
	"github.com/iliyamo/stagex-boxoffice/internal/queue"
	"github.com/iliyamo/stagex-boxoffice/internal/repository"
	"github.com/iliyamo/stagex-boxoffice/internal/router"
	queue_publisher "github.com/iliyamo/stagex-boxoffice/internal/service"
	"github.com/iliyamo/stagex-boxoffice/internal/session"
	"github.com/iliyamo/stagex-boxoffice/internal/ticket"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log := logger.Get()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("database connection failed", "error", err)
	}
	defer db.Close()

	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()
	sessCfg := config.LoadSessionConfig()

	// without Redis: no cache, no rate limit, editor sessions in memory
	rdb := config.NewRedisClient()
	var sessions session.Store
	if rdb != nil {
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb, sessCfg)
	} else {
		log.Warn("redis unavailable, running without cache and rate limit")
		sessions = session.NewMemoryStore(sessCfg.TTL)
	}
	purge := handler.Purger(func(ctx context.Context) error { return middleware.PurgeCache(ctx, cacheCfg, rdb) })

	seatRepo := repository.NewSeatRepo(db)
	theaterRepo := repository.NewTheaterRepo(db, seatRepo)
	categoryRepo := repository.NewSeatCategoryRepo(db)
	ticketRepo := repository.NewTicketRepo(db)
	genreRepo := repository.NewGenreRepo(db)
	showRepo := repository.NewShowRepo(db)
	bookingRepo := repository.NewBookingRepo(db)

	redeemer := ticket.NewRedeemer(ticketRepo, queue_publisher.NewRedemptionNotifier(cfg.AMQPURL), log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := &queue.ScanConsumer{URL: cfg.AMQPURL, LogPath: cfg.ScanLog, Logger: log}
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("scan consumer stopped", "error", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))

	router.RegisterRoutes(e, handler.Health{DB: db})
	router.RegisterScan(e, handler.NewTicketScanHandler(redeemer), middleware.NewTokenBucket(rlCfg, rdb))
	router.RegisterStaff(e, router.StaffHandlers{
		Categories: handler.NewSeatCategoryHandler(categoryRepo, purge),
		Theaters:   handler.NewTheaterHandler(theaterRepo, seatRepo, purge),
		Editor:     handler.NewEditorHandler(sessions, theaterRepo, seatRepo, categoryRepo, purge),
		Genres:     handler.NewGenreHandler(genreRepo, purge),
		Shows:      handler.NewShowHandler(showRepo, purge),
		Bookings:   handler.NewBookingHandler(bookingRepo),
	}, cfg.JWTSecret, middleware.NewRedisCache(cacheCfg, rdb))

	go func() {
		addr := ":" + cfg.Port
		log.Info("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}
