package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mferns/meal-reservation/internal/config"
	"github.com/mferns/meal-reservation/internal/database"
	"github.com/mferns/meal-reservation/internal/handler"
	"github.com/mferns/meal-reservation/internal/middleware"
	"github.com/mferns/meal-reservation/internal/queue"
	"github.com/mferns/meal-reservation/internal/repository"
	"github.com/mferns/meal-reservation/internal/router"
	"github.com/mferns/meal-reservation/internal/service"
	"github.com/mferns/meal-reservation/internal/weather"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	if cfg.SeedDemoData {
		if err := database.SeedDemoData(ctx, db); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
	}

	restaurantRepo := repository.NewRestaurantRepo(db)
	mealRepo := repository.NewMealRepo(db)

	ledger := repository.NewSeatLedger()
	store := repository.NewReservationStore()

	var publisher service.EventPublisher
	if cfg.AMQPURL != "" {
		publisher = &service.AMQPPublisher{URL: cfg.AMQPURL}
		go queue.StartReservationConsumer(cfg.AMQPURL)
	}

	svc := service.NewReservationService(mealRepo, ledger, store, repository.CodeIssuer{}, publisher)
	forecasts := weather.New(cfg.WeatherAPIURL, cfg.WeatherCityCode, cfg.WeatherCacheTTL)

	browseHandler := &handler.BrowseHandler{
		Restaurants: restaurantRepo,
		Meals:       mealRepo,
		Service:     svc,
		Weather:     forecasts,
	}
	reservationHandler := &handler.ReservationHandler{
		Service:     svc,
		Meals:       mealRepo,
		Restaurants: restaurantRepo,
	}
	staffHandler := &handler.StaffHandler{
		Service:     svc,
		Meals:       mealRepo,
		Restaurants: restaurantRepo,
	}
	metricsHandler := &handler.MetricsHandler{Weather: forecasts}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	// Redis backs the browse cache and rate limiter; without it both
	// become pass-throughs and the booking flow is unaffected.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}
	browseMW := []echo.MiddlewareFunc{
		middleware.RateLimit(config.LoadRateLimitConfig(), rdb),
		middleware.ResponseCache(config.LoadCacheConfig(), rdb),
	}

	router.RegisterRoutes(e, browseHandler, reservationHandler, staffHandler, metricsHandler, browseMW...)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
