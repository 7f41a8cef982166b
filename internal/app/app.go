package app

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yash-bansod-2003/shop-autentication/internal/api/auth"
	"github.com/yash-bansod-2003/shop-autentication/internal/api/users"
	"github.com/yash-bansod-2003/shop-autentication/internal/config"
	"github.com/yash-bansod-2003/shop-autentication/internal/database/model"
	"github.com/yash-bansod-2003/shop-autentication/internal/middleware"
	"github.com/yash-bansod-2003/shop-autentication/internal/repository"
	"github.com/yash-bansod-2003/shop-autentication/pkg/cache"
	"github.com/yash-bansod-2003/shop-autentication/pkg/hashing"
	"github.com/yash-bansod-2003/shop-autentication/pkg/logger"
	"github.com/yash-bansod-2003/shop-autentication/pkg/token"
	"github.com/yash-bansod-2003/shop-autentication/pkg/token/keys"
)

func SetupRouter(cfg *config.Config, db *gorm.DB, c cache.Cache, keyPair *keys.KeyPair, l logger.Logger) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(l, cfg.Server.Mode))
	r.Use(middleware.ErrorHandler(l, cfg.Server.Mode))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Health check
	r.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// Public key set for access token verification by gateways.
	jwks := keyPair.ToJWKS()
	r.GET("/.well-known/jwks.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, jwks)
	})

	// One signer per token purpose: asymmetric for access, symmetric for
	// refresh and forgot.
	accessSigner := token.NewRSASigner(keyPair, cfg.JWT.Issuer, cfg.JWT.AccessTTL)
	refreshSigner := token.NewHMACSigner(cfg.JWT.RefreshSecret, cfg.JWT.Issuer, cfg.JWT.RefreshTTL)
	forgotSigner := token.NewHMACSigner(cfg.JWT.ForgotSecret, cfg.JWT.Issuer, cfg.JWT.ForgotTTL)

	usersRepository := repository.NewUserRepository(db)
	sessionsRepository := repository.NewSessionRepository(db)
	hasher := hashing.NewBcrypt(0)

	authenticate := middleware.Authenticate(accessSigner)
	limit := func(name string) gin.HandlerFunc {
		return middleware.RateLimit(c, l, name, cfg.RateLimit)
	}

	authHandler := auth.NewHandler(usersRepository, sessionsRepository, hasher,
		accessSigner, refreshSigner, forgotSigner, l, cfg.Cookies)
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", limit("login"), authHandler.Login)
		authGroup.GET("/profile", authenticate, authHandler.Profile)
		authGroup.POST("/forgot", limit("forgot"), authHandler.Forgot)
		authGroup.PUT("/reset/:token", authHandler.Reset)
		authGroup.GET("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authenticate, authHandler.Logout)
	}

	usersHandler := users.NewHandler(usersRepository, hasher, l)
	usersGroup := r.Group("/users")
	usersGroup.Use(authenticate, middleware.Authorize(model.RoleAdmin))
	{
		usersGroup.POST("", usersHandler.Create)
		usersGroup.GET("", usersHandler.FindAll)
		usersGroup.GET("/:id", usersHandler.FindOne)
		usersGroup.PUT("/:id", usersHandler.Update)
		usersGroup.DELETE("/:id", usersHandler.Delete)
	}

	return r
}
