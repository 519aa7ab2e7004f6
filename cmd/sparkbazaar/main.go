package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/sparkbazaar/sparkbazaar/internal/admin"
	"github.com/sparkbazaar/sparkbazaar/internal/app"
	"github.com/sparkbazaar/sparkbazaar/internal/auth"
	"github.com/sparkbazaar/sparkbazaar/internal/cart"
	"github.com/sparkbazaar/sparkbazaar/internal/catalog/categories"
	"github.com/sparkbazaar/sparkbazaar/internal/catalog/products"
	"github.com/sparkbazaar/sparkbazaar/internal/checkout"
	"github.com/sparkbazaar/sparkbazaar/internal/customers"
	"github.com/sparkbazaar/sparkbazaar/internal/media"
	"github.com/sparkbazaar/sparkbazaar/internal/orders"
	"github.com/sparkbazaar/sparkbazaar/internal/platform/cache"
	"github.com/sparkbazaar/sparkbazaar/internal/platform/db"
	"github.com/sparkbazaar/sparkbazaar/internal/shared"
	"github.com/sparkbazaar/sparkbazaar/internal/view"
	"github.com/sparkbazaar/sparkbazaar/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if err := db.Migrate(cfg.PGDSN, cfg.MigrationsPath); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "sparkbazaar_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	auditLogger := shared.NewAuditLogger(dbpool)
	idempotencyStore := shared.NewIdempotencyStore(dbpool)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	mediaStore, err := media.NewStore(cfg.MediaDir, cfg.MediaURLPrefix, logger)
	if err != nil {
		logger.Error("init media store", slog.Any("error", err))
		os.Exit(1)
	}

	jobClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	authService := auth.NewService(auth.NewRepository(dbpool))
	authHandler := auth.NewHandler(logger, authService, templates, sessionManager, csrfManager)

	categoryService := categories.NewService(categories.NewRepository(dbpool))
	categoryHandler := categories.NewHandler(logger, categoryService, templates, csrfManager)

	productService := products.NewService(products.NewRepository(dbpool))
	productHandler := products.NewHandler(logger, productService, categoryService, mediaStore, templates, csrfManager)

	cartStore := cart.NewRedisStore(redisClient, cfg.SessionTTL)
	cartHandler := cart.NewHandler(logger, cartStore, productService, templates, csrfManager)

	orderNotifier := orders.NewNotifier(redisClient, logger)
	orderService := orders.NewService(logger, orders.NewRepository(dbpool), auditLogger)
	orderHandler := orders.NewHandler(logger, orderService, orderNotifier, templates, csrfManager)

	checkoutService := checkout.NewService(logger, cartStore, checkout.NewRepository(dbpool), idempotencyStore, orderNotifier, jobClient)
	checkoutHandler := checkout.NewHandler(logger, checkoutService, cartStore, orderService, templates, csrfManager)

	customerRepo := customers.NewRepository(dbpool)
	adminHandler := admin.NewHandler(logger, orderService, productService, customerRepo, templates, csrfManager)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		SessionManager:  sessionManager,
		CSRFManager:     csrfManager,
		AuthService:     authService,
		AuthHandler:     authHandler,
		ProductHandler:  productHandler,
		CategoryHandler: categoryHandler,
		CartStore:       cartStore,
		CartHandler:     cartHandler,
		CheckoutHandler: checkoutHandler,
		OrderHandler:    orderHandler,
		AdminHandler:    adminHandler,
		MediaStore:      mediaStore,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		events, cancel := orderNotifier.Subscribe(groupCtx)
		defer cancel()
		for {
			select {
			case <-groupCtx.Done():
				return nil
			case event, ok := <-events:
				if !ok {
					return nil
				}
				logger.Info("new order received",
					slog.String("order_id", event.OrderID),
					slog.Float64("total", event.TotalAmount))
			}
		}
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && err != context.Canceled {
		logger.Error("server exit", slog.Any("error", err))
		os.Exit(1)
	}
}
