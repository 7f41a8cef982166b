package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yash-bansod-2003/shop-autentication/internal/app"
	"github.com/yash-bansod-2003/shop-autentication/internal/config"
	"github.com/yash-bansod-2003/shop-autentication/internal/database"
	"github.com/yash-bansod-2003/shop-autentication/pkg/cache"
	"github.com/yash-bansod-2003/shop-autentication/pkg/logger"
	"github.com/yash-bansod-2003/shop-autentication/pkg/token/keys"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewLogger(cfg.Server.Mode)

	// 2. Connect DB (migrates the schema)
	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// 3. Connect Redis (rate limiter backend)
	rdb, err := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer rdb.Close()

	// 4. Access token key material
	var keyPair *keys.KeyPair
	if cfg.JWT.PrivateKey != "" {
		keyPair, err = keys.ParsePrivateKeyPEM(cfg.JWT.KeyID, []byte(cfg.JWT.PrivateKey))
		if err != nil {
			log.Fatalf("Failed to parse JWT private key: %v", err)
		}
	} else {
		appLogger.Warn("no JWT private key configured, generating a throwaway pair; access tokens will not survive restarts")
		keyPair, err = keys.GenerateRSAKeyPair(cfg.JWT.KeyID, 2048)
		if err != nil {
			log.Fatalf("Failed to generate JWT key pair: %v", err)
		}
	}
	if cfg.JWT.RefreshSecret == "" || cfg.JWT.ForgotSecret == "" {
		log.Fatal("refresh and forgot token secrets must be configured")
	}

	// 5. Setup Router
	r := app.SetupRouter(cfg, db, rdb, keyPair, appLogger)

	// 6. Run Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		appLogger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	appLogger.Info("server exiting")
}
