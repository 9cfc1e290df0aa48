// Command vaultchat-service runs the backend: anonymous commitment-gated
// submissions with cryptographic data expiry, signed chat proof-of-
// existence, and Merkle-based verification.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"vaultchat-backend/internal/config"
	"vaultchat-backend/internal/handler/http/admin"
	"vaultchat-backend/internal/handler/http/auth"
	"vaultchat-backend/internal/handler/http/chat"
	"vaultchat-backend/internal/handler/http/keys"
	"vaultchat-backend/internal/handler/http/verify"
	"vaultchat-backend/internal/handler/ws"
	"vaultchat-backend/internal/middleware"
	"vaultchat-backend/internal/notify"
	"vaultchat-backend/internal/scheduler"
	adminsvc "vaultchat-backend/internal/service/admin"
	chatsvc "vaultchat-backend/internal/service/chat"
	keyssvc "vaultchat-backend/internal/service/keys"
	"vaultchat-backend/internal/service/submission"
	verifysvc "vaultchat-backend/internal/service/verify"
	"vaultchat-backend/internal/storage"
	"vaultchat-backend/internal/vault"
	"vaultchat-backend/pkg/audit"
	"vaultchat-backend/pkg/constants"
	"vaultchat-backend/pkg/logger"
	"vaultchat-backend/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}

	if err := logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}); err != nil {
		panic(fmt.Sprintf("logger: %v", err))
	}
	defer logger.Sync()
	log := logger.Log

	v, err := vault.Bootstrap(cfg.VaultDir)
	if err != nil {
		log.Fatal("vault bootstrap failed", zap.Error(err))
	}

	store := storage.New(cfg.StorageDir)
	submissions := storage.NewSubmissionRepo(store)
	chatRepo := storage.NewChatRepo(store)
	commitments := storage.NewCommitmentRepo(store)
	proofs := storage.NewProofRepo(store)
	keysRepo := storage.NewKeysRepo(store)

	m := metrics.New()

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	bus := notify.New(redisClient, log)
	hub := ws.NewHub(bus, log)
	auditLog := audit.New(redisClient, log)

	submissionSvc := submission.New(submissions, commitments, proofs, v, m, log, cfg.PowDifficulty, cfg.KeyExpiryMinutes)
	chatSvc := chatsvc.New(chatRepo, proofs, keysRepo, v, m, log, hub, cfg.KeyExpiryMinutes)
	keysSvc := keyssvc.New(keysRepo, v)
	verifySvc := verifysvc.New(proofs, submissions, chatRepo, v)

	sweepInterval := time.Duration(cfg.SchedulerIntervalSeconds) * time.Second
	sweeper := scheduler.New(submissions, chatRepo, m, log, sweepInterval)
	adminSvc := adminsvc.New(submissions, chatRepo, commitments, proofs, sweeper)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	sweeper.Start(ctx)

	authHandler := auth.New(submissionSvc)
	chatHandler := chat.New(chatSvc, hub)
	keysHandler := keys.New(keysSvc)
	verifyHandler := verify.New(verifySvc)
	adminHandler := admin.New(adminSvc, auditLog)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.NewPrometheusMiddleware(m).Handler())
	router.Use(middleware.HealthCheck(cfg.ServiceName))

	router.GET("/metrics", middleware.MetricsHandler(m))

	authGroup := router.Group("/auth")
	authGroup.POST("/identity", authHandler.Identity)
	authGroup.POST("/submit", authHandler.Submit)
	authGroup.GET("/read/:msg_id", authHandler.Read)

	chatGroup := router.Group("/chat")
	chatGroup.POST("/send", chatHandler.Send)
	chatGroup.GET("/inbox/:user_id", chatHandler.Inbox)
	chatGroup.GET("/ws/:user_id", chatHandler.WebSocket)

	keysGroup := router.Group("/keys")
	keysGroup.POST("/register", keysHandler.Register)
	keysGroup.GET("/server/pubkey", keysHandler.ServerPublicKey)
	keysGroup.GET("/:user_id", keysHandler.Get)

	verifyGroup := router.Group("/verify")
	verifyGroup.GET("/root", verifyHandler.Root)
	verifyGroup.POST("/hash", verifyHandler.HashCheck)
	verifyGroup.GET("/proof/:id", verifyHandler.InclusionProof)
	verifyGroup.POST("/signature", verifyHandler.SignatureVerify)

	adminGroup := router.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin(cfg.AdminToken))
	adminGroup.GET("/messages", adminHandler.Messages)
	adminGroup.GET("/chat", adminHandler.Chat)
	adminGroup.GET("/proofs", adminHandler.Proofs)
	adminGroup.GET("/commitments", adminHandler.Commitments)
	adminGroup.GET("/stats", adminHandler.Stats)
	adminGroup.POST("/expire", adminHandler.Expire)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.GracefulShutdownTimeout)
	defer cancel()

	sweeper.Stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
