package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/pick36/config"
	"github.com/padraicbc/pick36/contest"
	"github.com/padraicbc/pick36/db"
	"github.com/padraicbc/pick36/handlers"
	applog "github.com/padraicbc/pick36/logger"
	mw "github.com/padraicbc/pick36/middleware"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	ctx := context.Background()
	if err := db.CreateTables(ctx, bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	created, err := contest.EnsureAdmin(ctx, bdb, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail)
	if err != nil {
		logger.Fatal("ensure admin failed", zap.Error(err))
	}
	if created {
		logger.Info("bootstrap admin created", zap.String("username", cfg.AdminUsername))
	}

	h := handlers.New(bdb, cfg.JWTKey())

	e := echo.New()
	e.Validator = handlers.NewValidator()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))

	// Public
	e.POST("/api/signup", h.Signup)
	e.POST("/api/signin", h.Signin)

	// Protected – require valid JWT in Authorization header
	api := e.Group("/api", mw.JWT(cfg.JWTKey()))
	api.GET("/races", h.Races)
	api.GET("/races/next", h.NextRace)
	api.POST("/pick", h.SubmitPick)
	api.GET("/picks", h.MyPicks)
	api.GET("/used-drivers", h.UsedDrivers)
	api.GET("/drivers", h.Drivers)
	api.GET("/race-picks", h.RacePicks)
	api.GET("/results", h.RaceResults)
	api.GET("/leaderboard", h.Leaderboard)

	// Admin – race management, results entry, entry management
	admin := api.Group("", mw.Admin())
	admin.POST("/races", h.CreateRace)
	admin.POST("/results", h.EnterResults)
	admin.POST("/results/csv", h.EnterResultsCSV)
	admin.POST("/auto-assign", h.AutoAssign)
	admin.GET("/users", h.Users)
	admin.PUT("/users/paid", h.SetPaid)
	admin.GET("/users/export", h.ExportUsers)

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
