package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tablefare/restaurant-backend/handlers"
	"github.com/tablefare/restaurant-backend/internal/auth"
	"github.com/tablefare/restaurant-backend/internal/catalog"
	"github.com/tablefare/restaurant-backend/internal/comments"
	"github.com/tablefare/restaurant-backend/internal/config"
	"github.com/tablefare/restaurant-backend/internal/database"
	"github.com/tablefare/restaurant-backend/internal/facebook"
	"github.com/tablefare/restaurant-backend/internal/favorites"
	"github.com/tablefare/restaurant-backend/internal/feedback"
	"github.com/tablefare/restaurant-backend/internal/sessions"
	"github.com/tablefare/restaurant-backend/internal/storage"
	"github.com/tablefare/restaurant-backend/internal/users"
	"github.com/tablefare/restaurant-backend/pkg/logger"
	"github.com/tablefare/restaurant-backend/pkg/metrics"
	"github.com/tablefare/restaurant-backend/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v facebook=%v minio=%v",
		cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Facebook.ClientID != "", cfg.Upload.Endpoint != "")

	r := gin.New()
	r.Use(middleware.CORS())
	r.Use(gin.Logger(), gin.Recovery())

	ctx := context.Background()

	// Redis first: sessions, token blacklist and the optional rate limiter
	// all prefer it when reachable.
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			rdb = nil
		} else {
			sessions.SetBlacklistClient(rdb)
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	var sessionsSvc *sessions.Service
	if rdb != nil {
		sessionsSvc = sessions.NewService(sessions.NewRedisRepository(rdb, "session:"))
		logger.Infof("using Redis for session storage")
	}

	// MongoDB with retry to tolerate startup races; when it stays down the
	// catalog falls back to seeded in-memory content, read-only.
	var client *mongo.Client
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			client, err = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if err == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if err != nil {
			client = nil
		}
	}

	var (
		userSvc      *users.Service
		catalogSvc   *catalog.Service
		commentsSvc  *comments.Service
		feedbackRepo feedback.Repository
		favRepo      favorites.Repository
		readOnly     bool
	)
	if client != nil {
		defer func() { _ = client.Disconnect(ctx) }()
		db := client.Database(cfg.MongoDB.Database)

		userSvc = users.NewService(users.NewMongoRepository(db.Collection("users")))
		catalogSvc = catalog.NewService(
			catalog.NewMongoDishRepository(db.Collection("dishes")),
			catalog.NewMongoLeaderRepository(db.Collection("leaders")),
			catalog.NewMongoPromotionRepository(db.Collection("promotions")),
		)
		commentsSvc = comments.NewService(comments.NewMongoRepository(db.Collection("comments")))
		feedbackRepo = feedback.NewMongoRepository(db.Collection("feedback"))
		favRepo = favorites.NewMongoRepository(db.Collection("favorites"))

		if sessionsSvc == nil {
			sessionsSvc = sessions.NewService(sessions.NewMongoRepository(db.Collection("sessions")))
		}
		logger.Infof("connected to MongoDB, database %q", cfg.MongoDB.Database)
	} else {
		logger.Warnf("MongoDB unavailable: serving seeded catalog content read-only")
		dishes := catalog.NewMemoryDishRepository()
		leaders := catalog.NewMemoryLeaderRepository()
		promos := catalog.NewMemoryPromotionRepository()
		catalog.SeedMemory(dishes, leaders, promos)
		catalogSvc = catalog.NewService(dishes, leaders, promos)
		readOnly = true
	}

	issuer := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	fbClient := facebook.NewClient(cfg.Facebook.BaseURL)

	var verifyUser gin.HandlerFunc
	if userSvc != nil {
		verifyUser = middleware.VerifyUser(issuer, userSvc)
	} else {
		// without a credential store nobody can be resolved; reject outright
		verifyUser = func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "credential store unavailable"})
		}
	}
	verifyAdmin := middleware.VerifyAdmin()

	root := r.Group("/")
	handlers.NewDishesHandler(catalogSvc, readOnly, verifyUser, verifyAdmin).Register(root)
	handlers.NewLeadersHandler(catalogSvc, readOnly, verifyUser, verifyAdmin).Register(root)
	handlers.NewPromotionsHandler(catalogSvc, readOnly, verifyUser, verifyAdmin).Register(root)

	if userSvc != nil && sessionsSvc != nil {
		handlers.NewUsersHandler(cfg, userSvc, sessionsSvc, issuer, fbClient, verifyUser, verifyAdmin).Register(root)
	} else {
		logger.Warnf("user routes not registered: user/session services unavailable")
	}
	if commentsSvc != nil {
		handlers.NewCommentsHandler(commentsSvc, verifyUser, verifyAdmin).Register(root)
	}
	if feedbackRepo != nil {
		handlers.NewFeedbackHandler(feedbackRepo, verifyUser, verifyAdmin).Register(root)
	}
	if favRepo != nil {
		handlers.NewFavoritesHandler(favRepo, verifyUser).Register(root)
	}

	if cfg.Upload.Endpoint != "" {
		store, err := storage.NewImageStore(cfg.Upload)
		if err != nil {
			logger.Warnf("image store unavailable: %v", err)
		} else {
			handlers.NewUploadHandler(store, cfg.Upload.MaxFileSize, verifyUser, verifyAdmin).Register(root)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness reflects the backing stores, not just the process
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{
			"mongodb": client != nil,
			"redis":   rdb != nil || cfg.Redis.Host == "",
			"users":   userSvc != nil,
		}
		ready := deps["redis"] && (client != nil || readOnly)
		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting restaurant backend on %s (read_only=%v)", addr, readOnly)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
