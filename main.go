package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"todo-api/auth"
	"todo-api/config"
	"todo-api/handlers"
	"todo-api/routes"
	"todo-api/storage"
)

func main() {
	godotenv.Load()
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := storage.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Errorf("mongo disconnect: %v", err)
		}
	}()

	db := client.Database(cfg.MongoDB)
	users := storage.NewUserStore(db)
	todos := storage.NewTodoStore(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatalf("indexes: %v", err)
	}

	tokens := auth.NewTokens(cfg.JWTSecret)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.HTTPErrorHandler(log.StandardLogger())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	routes.Register(e, users, todos, tokens)

	log.Infof("server starting on port %s", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
