package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/seo-audit/backend/audit"
	"github.com/seo-audit/backend/cache"
	"github.com/seo-audit/backend/config"
	"github.com/seo-audit/backend/fetcher"
	"github.com/seo-audit/backend/middleware"
	"github.com/seo-audit/backend/pagespeed"
	"github.com/seo-audit/backend/stats"
	"github.com/seo-audit/backend/store"
)

func loadEnv() {
	// .env.development wins for local development, then plain .env.
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}
}

func main() {
	loadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	gin.SetMode(cfg.GinMode)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer st.Close()

	usage, err := stats.NewStorage(filepath.Dir(cfg.DBPath), logger)
	if err != nil {
		log.Fatal("Failed to open stats storage: ", err)
	}

	resultCache := cache.New(cfg.CacheTTL)
	defer resultCache.Close()

	fetchClient := fetcher.New(cfg.FetchTimeout, cfg.ProbeTimeout, cfg.UserAgent, logger)
	psClient := pagespeed.New(cfg.PageSpeedAPIKey, cfg.PageSpeedTimeout, logger)
	if !psClient.Enabled() {
		logger.Warn("no PageSpeed API key configured, falling back to heuristic performance scores")
	}

	service := audit.New(cfg, fetchClient, psClient, resultCache, st, usage, logger)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorHandler(logger))
	r.Use(rateLimiter.RateLimit())
	r.Use(middleware.Stats(usage))

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/analyze", analyzeHandler(service, logger))
		api.GET("/history", historyHandler(service, logger))
		api.GET("/analysis/:id", analysisHandler(service))
		api.GET("/statistics", statisticsHandler(usage, resultCache, st))
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

// analyzeRequest accepts both current and legacy field names used by
// older dashboard builds.
type analyzeRequest struct {
	URL            string   `json:"url"`
	BusinessType   string   `json:"businessType"`
	BusinessSector string   `json:"businessSector"`
	Location       string   `json:"location"`
	TargetLocation string   `json:"targetLocation"`
	Competitors    []string `json:"competitors"`
	ForceRefresh   bool     `json:"forceRefresh"`
}

func analyzeHandler(service *audit.Service, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body analyzeRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if body.URL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
			return
		}
		businessType := body.BusinessType
		if businessType == "" {
			businessType = body.BusinessSector
		}
		if businessType == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "businessType or businessSector is required"})
			return
		}
		location := body.Location
		if location == "" {
			location = body.TargetLocation
		}
		if location == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "location or targetLocation is required"})
			return
		}

		logger.Info("analysis requested", "url", body.URL, "location", location, "client", c.ClientIP())

		result, err := service.Analyze(c.Request.Context(), audit.Request{
			URL:          body.URL,
			BusinessType: businessType,
			Location:     location,
			Competitors:  body.Competitors,
			ForceRefresh: body.ForceRefresh,
		})
		if err != nil {
			if errors.Is(err, audit.ErrInvalidURL) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL provided"})
				return
			}
			logger.Error("analysis failed", "url", body.URL, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
			return
		}
		c.JSON(http.StatusOK, audit.ToFrontend(result))
	}
}

func historyHandler(service *audit.Service, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := service.History(c.Request.Context())
		if err != nil {
			logger.Error("listing history failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
			return
		}
		transformed := make([]*audit.FrontendResult, 0, len(results))
		for _, result := range results {
			transformed = append(transformed, audit.ToFrontend(result))
		}
		c.JSON(http.StatusOK, transformed)
	}
}

func analysisHandler(service *audit.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := service.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analysis"})
			return
		}
		c.JSON(http.StatusOK, audit.ToFrontend(result))
	}
}

func statisticsHandler(usage *stats.Storage, resultCache *cache.ResultCache, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		month := usage.CurrentMonth()
		hits, misses, size := resultCache.Stats()
		total, err := st.Count(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"month": gin.H{
				"auditsCompleted":   month.AuditsCompleted,
				"auditErrors":       month.AuditErrors,
				"averageDurationMs": month.AverageDurationMs(),
			},
			"cache": gin.H{
				"hits":   hits,
				"misses": misses,
				"size":   size,
			},
			"storedAnalyses": total,
		})
	}
}
