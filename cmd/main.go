package main

import (
	"context"
	"errors"
	"filloutproxy"
	"filloutproxy/internal/api/handler/endpoints"
	"filloutproxy/internal/api/handler/middleware"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	config := filloutproxy.LoadConfig(".env")
	logger := filloutproxy.NewLogger()
	gin.SetMode(gin.ReleaseMode)

	if config.Mode == "dev" {
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	router, err := graceful.Default(graceful.WithAddr(config.ApiPort))
	if err != nil {
		panic(err)
	}
	defer stop()
	defer router.Close()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RequestLogger(logger))

	initAPI(router, config, logger)

	logger.Debug().Msgf("Starting Fillout proxy API on port %s", config.ApiPort)
	if err = router.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Msg(err.Error())
		panic(err)
	}

}

func initAPI(router *graceful.Graceful, config filloutproxy.AppConfig, logger zerolog.Logger) {
	endpoints.ResponsesHandler(router, config, logger)
	endpoints.HealthHandler(router)
}
