package app

import (
	"github.com/hueyning/kanban-app/internal/auth"
	"github.com/hueyning/kanban-app/internal/cache"
	"github.com/hueyning/kanban-app/internal/config"
	"github.com/hueyning/kanban-app/internal/handlers"
	mw "github.com/hueyning/kanban-app/internal/middleware"
	"github.com/hueyning/kanban-app/internal/repo"
	"github.com/hueyning/kanban-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	sessionStore := auth.NewStore(rdb, cfg.Session.TTL.Duration())
	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	taskRepo := repo.NewPGTaskRepo(db)
	boardCache := cache.NewBoardCache(rdb, cfg.Redis.BoardTTL.Duration())
	boardSvc := service.NewBoardService(taskRepo, boardCache)

	authHandler := handlers.NewAuthHandler(sessionStore, userSvc, cfg.Session.TTL.Duration())
	boardHandler := handlers.NewBoardHandler(boardSvc)
	SetupRoutes(r, authHandler, boardHandler, sessionStore)

	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/metrics", mw.MetricsHandler())
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// SetupRoutes wires just the application routes; split out so tests can
// assemble a router over fakes.
func SetupRoutes(r *gin.Engine, authHandler *handlers.AuthHandler, boardHandler *handlers.BoardHandler, sessions auth.Sessions) {
	r.GET("/register", authHandler.RegisterForm)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.LoginForm)
	r.POST("/login", authHandler.Login)

	protected := r.Group("", auth.RequireSession(sessions))
	protected.GET("/logout", authHandler.Logout)
	protected.GET("/", boardHandler.Show)
	protected.POST("/do", boardHandler.Create)
	protected.POST("/doing", boardHandler.Doing)
	protected.POST("/done", boardHandler.Done)
	protected.POST("/delete", boardHandler.Delete)
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
