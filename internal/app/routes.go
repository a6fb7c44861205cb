package app

import (
	"github.com/Yunxiang777/accounts/internal/auth"
	"github.com/Yunxiang777/accounts/internal/cache"
	"github.com/Yunxiang777/accounts/internal/config"
	"github.com/Yunxiang777/accounts/internal/handlers"
	"github.com/Yunxiang777/accounts/internal/repo"
	"github.com/Yunxiang777/accounts/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	entryRepo := repo.NewPGEntryRepo(db)
	entryCache := cache.NewEntryCache(rdb, cfg.Redis.DefaultTTL.Duration())
	entrySvc := service.NewEntryService(entryRepo, entryCache)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL.Duration())
	sessions := auth.NewStore(rdb, cfg.Auth.SessionTTL.Duration())

	// API group: stateless bearer tokens.
	api := r.Group("/api")
	authHandler := handlers.NewAuthHandler(userSvc, tokens)
	api.POST("/login", authHandler.Login)
	api.POST("/register", authHandler.Register)

	protected := api.Group("", auth.RequireToken(tokens))
	accountHandler := handlers.NewAccountHandler(entrySvc)
	protected.GET("/account", accountHandler.List)
	protected.POST("/account/create", accountHandler.Create)
	protected.GET("/account/:id", accountHandler.GetByID)
	protected.PATCH("/account/:id", accountHandler.Update)
	protected.DELETE("/account/:id", accountHandler.Delete)

	// Web group: cookie-backed sessions, redirect-based flow.
	web := handlers.NewWebHandler(sessions, userSvc, entrySvc)
	r.GET("/login", web.LoginPage)
	r.GET("/reg", web.RegisterPage)
	r.POST("/login", web.Login)
	r.POST("/reg", web.Register)
	r.POST("/logout", web.Logout)

	guarded := r.Group("", auth.RequireSession(sessions, "/login"))
	guarded.GET("/", web.Home)
	guarded.GET("/account", web.Account)
	guarded.POST("/account/create", web.AccountCreate)
	guarded.DELETE("/account/delete/:id", web.AccountDelete)
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}
