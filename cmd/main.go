// @title                       Game Center API
// @version                     1.0
// @description                 Storefront for games and DLC.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamecenter/auth"
	"gamecenter/cache"
	"gamecenter/config"
	"gamecenter/db"
	"gamecenter/docs"
	"gamecenter/events"
	"gamecenter/handlers"
	"gamecenter/middleware"
	"gamecenter/monitoring"
	"gamecenter/shop"
	"gamecenter/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Log.WithError(err).Fatal("invalid configuration")
	}

	utils.InitLogger(utils.LoggerOptions{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Release: cfg.Release(),
	})

	if cfg.Release() {
		gin.SetMode(gin.ReleaseMode)
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		utils.Log.WithError(err).Fatal("database unavailable")
	}
	defer db.Close(gdb)

	var redisCache *cache.Cache
	var revoker auth.Revoker = auth.NewMemoryRevoker()
	if cfg.RedisAddr != "" {
		redisCache, err = cache.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			utils.Log.WithError(err).Warn("redis unavailable, running without cache")
			redisCache = nil
		} else {
			revoker = redisCache
			defer redisCache.Close()
			utils.Log.WithField("addr", cfg.RedisAddr).Info("redis connected")
		}
	}

	var publisher events.Publisher = events.Discard{}
	if cfg.NatsURL != "" {
		nc, err := events.Connect(cfg.NatsURL, "gamecenter")
		if err != nil {
			utils.Log.WithError(err).Warn("nats unavailable, events are dropped")
		} else {
			publisher = nc
			defer nc.Close()
			utils.Log.WithField("url", cfg.NatsURL).Info("nats connected")
		}
	}

	tokens, err := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		utils.Log.WithError(err).Fatal("session tokens")
	}

	monitoring.InitMetrics()

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	limiter.StartCleanup(time.Minute, stopCleanup)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.ErrorLogger(),
		middleware.SecurityHeaders(),
		middleware.RemovePoweredBy(),
		monitoring.PrometheusMiddleware(),
	)
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/ping", func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if err := db.Ping(c.Request.Context(), gdb); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		if redisCache != nil {
			if err := redisCache.Ping(c.Request.Context()); err != nil {
				status["redis"] = err.Error()
			}
		}
		c.JSON(http.StatusOK, status)
	})
	r.GET("/metrics", monitoring.PrometheusHandler())
	docs.SwaggerInfo.BasePath = "/api/v1"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h := handlers.New(handlers.Deps{
		Shop:    shop.New(gdb),
		Tokens:  tokens,
		Revoker: revoker,
		Cache:   redisCache,
		Events:  publisher,
	})
	api := r.Group("/api/v1", limiter.Middleware())
	h.Mount(api)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       time.Minute,
	}

	go func() {
		var err error
		if cfg.UseHTTPS {
			server.TLSConfig = &tls.Config{
				MinVersion:       tls.VersionTLS12,
				CurvePreferences: []tls.CurveID{tls.X25519, tls.CurveP384, tls.CurveP256},
			}
			utils.Log.WithFields(logrus.Fields{"port": cfg.Port, "cert": cfg.TLSCertFile}).Info("starting HTTPS server")
			err = server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			utils.Log.WithField("port", cfg.Port).Warn("starting HTTP server without TLS; set USE_HTTPS=true in production")
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		utils.Log.WithError(err).Error("graceful shutdown failed")
	}
}
