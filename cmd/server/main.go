package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/config"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/database"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/handler"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/queue"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/repository"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/router"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(database.Options{
		User: cfg.DBUser,
		Pass: cfg.DBPass,
		Host: cfg.DBHost,
		Port: cfg.DBPort,
		Name: cfg.DBName,

		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.DBConnMaxLifeMin) * time.Minute,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient() // nil disables caching and rate limiting

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	genres := repository.NewGenreRepo(db)
	actors := repository.NewActorRepo(db)
	halls := repository.NewHallRepo(db)
	movies := repository.NewMovieRepo(db)
	sessions := repository.NewSessionRepo(db)
	orders := repository.NewOrderRepo(db)

	h := router.Handlers{
		Auth:    handler.NewAuthHandler(users, tokens, &cfg),
		Catalog: handler.NewCatalogHandler(genres, actors, halls),
		Movies:  handler.NewMovieHandler(movies, cfg.MediaRoot),
		Session: handler.NewSessionHandler(sessions),
		Orders:  handler.NewOrderHandler(orders),
		Health:  handler.NewHealthHandler(db),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e, h, &cfg, rdb)

	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
