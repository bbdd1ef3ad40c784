package main // Entry point for the appointment portal API server

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/doctors-portal/internal/config"
	"github.com/iliyamo/doctors-portal/internal/database"
	"github.com/iliyamo/doctors-portal/internal/handler"
	"github.com/iliyamo/doctors-portal/internal/logger"
	"github.com/iliyamo/doctors-portal/internal/middleware"
	"github.com/iliyamo/doctors-portal/internal/payment"
	"github.com/iliyamo/doctors-portal/internal/queue"
	"github.com/iliyamo/doctors-portal/internal/repository"
	"github.com/iliyamo/doctors-portal/internal/router"
	"github.com/iliyamo/doctors-portal/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()
	log := logger.New(cfg.Env)

	client, err := database.Open(cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("document store connection failed")
	}
	db := client.Database(cfg.DBName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}
	cancel()

	store := repository.Store{
		Users:    repository.NewUserRepo(db),
		Services: repository.NewServiceRepo(db),
		Bookings: repository.NewBookingRepo(db),
		Doctors:  repository.NewDoctorRepo(db),
		Payments: repository.NewPaymentRepo(db),
	}

	pub := queue.NewAMQPPublisher(cfg.RabbitURL)
	intents := payment.NewStripeClient(cfg.StripeKey)

	avail := service.NewAvailability(store.Services, store.Bookings)
	admission := service.NewAdmission(store.Bookings, pub, log)
	reconciler := service.NewReconciler(store.Bookings, store.Payments, intents, pub, log)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unreachable; rate limiting and catalog cache disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	var catalogCache echo.MiddlewareFunc
	if cacheCfg := config.LoadCacheConfig(); cacheCfg.Enabled && rdb != nil {
		catalogCache = middleware.CacheJSON(rdb, cacheCfg.Prefix, cacheCfg.TTL)
	}

	router.Register(e, router.Handlers{
		Catalog:  handler.NewCatalogHandler(store.Services, avail),
		Users:    handler.NewUserHandler(store.Users, cfg.JWTSecret, cfg.TokenTTL),
		Bookings: handler.NewBookingHandler(admission, reconciler),
		Payments: handler.NewPaymentHandler(reconciler),
		Doctors:  handler.NewDoctorHandler(store.Doctors),
	}, router.Deps{
		Secret:       cfg.JWTSecret,
		Users:        store.Users,
		CatalogCache: catalogCache,
	})

	// Recovery worker for reconciliations that appended their payment but
	// failed the booking update.
	go queue.StartReconcileConsumer(cfg.RabbitURL, store.Bookings, log)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
