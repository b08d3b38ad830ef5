package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	chatHandler "recipe-chatbot/internal/api/handlers/chat"
	"recipe-chatbot/internal/api/handlers/health"
	recipeHandler "recipe-chatbot/internal/api/handlers/recipe"
	"recipe-chatbot/internal/api/middleware"
	"recipe-chatbot/internal/core/ai/cache"
	"recipe-chatbot/internal/core/ai/service"
	chatService "recipe-chatbot/internal/core/chat"
	recipeService "recipe-chatbot/internal/core/recipe"
	"recipe-chatbot/internal/core/store"
	"recipe-chatbot/internal/infrastructure/config"
	"recipe-chatbot/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 60 * time.Second
	// 請求體大小限制 (1MB)，純文字聊天不需要更大
	maxBodySize = 1 << 20
)

// buildStores 依設定建立儲存層，Redis 連不上就降級為記憶體實作
func buildStores(cfg *config.Config) (store.RecipeStore, store.ProfileStore) {
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		recipeStore, err := store.NewRedisRecipeStore(client)
		if err == nil {
			common.LogInfo("Using Redis stores",
				zap.String("addr", cfg.Redis.Addr),
				zap.Int("db", cfg.Redis.DB),
			)
			return recipeStore, store.NewRedisProfileStore(client)
		}
		common.LogWarn("Redis unavailable, falling back to in-memory stores",
			zap.Error(err),
			zap.String("addr", cfg.Redis.Addr),
		)
		_ = client.Close()
	}
	return store.NewMemoryRecipeStore(), store.NewMemoryProfileStore()
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheManager *cache.CacheManager) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 請求去重
	router.Use(middleware.Deduplication(cfg))

	// 速率限制
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("model", cfg.OpenRouter.Model),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化 AI 服務
	aiService, err := service.NewService(cfg, cacheManager)
	if err != nil || aiService == nil {
		common.LogError("Failed to initialize AI service", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize AI service: %w", err)
	}

	// 初始化儲存層
	recipeStore, profileStore := buildStores(cfg)

	// 初始化聊天服務
	chatSvc := chatService.NewService(aiService, profileStore, recipeStore, cfg.Chat.HistoryLimit)

	// 初始化食譜內容服務
	detailSvc := recipeService.NewDetailService(aiService, cacheManager)

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		// 注入配置與服務，供處理器與健康檢查取用
		c.Set("config", cfg)
		c.Set("ai_service", aiService)
		c.Set("chat_service", chatSvc)
		c.Set("cache_manager", cacheManager)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		chatHandlerInstance := chatHandler.NewHandler(chatSvc, cfg.Chat.MaxMessageChars)
		recipeHandlerInstance := recipeHandler.NewHandler(detailSvc, recipeStore)

		// 聊天
		api.POST("/chat", chatHandlerInstance.HandleChat)

		// 食譜內容（按需生成）
		api.GET("/recipe/:id", recipeHandlerInstance.HandleGetRecipe)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("ai_service_initialized", aiService != nil),
		zap.Bool("cache_manager_initialized", cacheManager != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
