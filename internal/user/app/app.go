package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Gani-23/Oauth4.0/config"
	"github.com/Gani-23/Oauth4.0/internal/infrastructure/messagequeue/kafka"
	"github.com/Gani-23/Oauth4.0/internal/infrastructure/tracing"
	"github.com/Gani-23/Oauth4.0/internal/middleware"
	"github.com/Gani-23/Oauth4.0/internal/user/controller"
	"github.com/Gani-23/Oauth4.0/internal/user/repository"
	"github.com/Gani-23/Oauth4.0/internal/user/service"
	"github.com/Gani-23/Oauth4.0/pkg/response"
)

type App struct {
	DB     *mongo.Database
	Config *config.Config
	Server *echo.Echo
}

func (app *App) Start() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	e := echo.New()
	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost, "user-service")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize tracing, continuing without exporter")
		traceProvider = tracing.FallbackProvider()
	}

	defer func() {
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown tracing")
		}
	}()

	tracer := traceProvider.Tracer("user-service")

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	g := e.Group("/api/v1")
	g.Use(middleware.Logger)

	kafkaProducer := kafka.CreateKafkaProducer(app.Config, app.Config.KafkaConfig.UserTopic)

	repo := repository.CreateNewMongoDBRepository(app.DB)
	svc := service.CreateNewService(repo, *app.Config, kafkaProducer)
	controller.CreateController(g, svc)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	app.Server = e

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)))
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.Server.Shutdown(ctx)
}
