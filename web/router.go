package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"teamop.dk/bosted/web/handlers/login"
	"teamop.dk/bosted/web/handlers/reminders"
	"teamop.dk/bosted/web/handlers/schedule"
	"teamop.dk/bosted/web/middlewares"
)

type Dependencies struct {
	Auth      login.Authenticator
	Schedule  schedule.Service
	Registrar schedule.Registrar
	Reminders reminders.Service

	JWTSecret      []byte
	TokenTTL       time.Duration
	ToothbrushCode string

	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

func setupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(deps.Logger))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	login.Register(api, deps.Auth, deps.JWTSecret, deps.TokenTTL)

	protected := api.Group("")
	protected.Use(middlewares.Authentication(deps.JWTSecret))
	{
		schedule.Register(protected, deps.Schedule, deps.Registrar)
		reminders.Register(protected, deps.Reminders, deps.ToothbrushCode)
	}

	return r
}
