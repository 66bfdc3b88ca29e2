package app

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authapi "github.com/adminboard/adminboard/internal/api/auth"
	menuapi "github.com/adminboard/adminboard/internal/api/menu"
	userapi "github.com/adminboard/adminboard/internal/api/user"
	"github.com/adminboard/adminboard/internal/auth"
	"github.com/adminboard/adminboard/internal/config"
	"github.com/adminboard/adminboard/internal/domain/menu"
	"github.com/adminboard/adminboard/internal/domain/user"
	"github.com/adminboard/adminboard/internal/middleware"
)

type Deps struct {
	Auth        *auth.Service
	Tokens      *auth.TokenService
	Users       user.Repo
	Menus       menu.Repo
	Permissions menu.PermissionRepo
	Logger      *zap.Logger
}

// SetupRouter assembles the gin engine: public auth routes, the authorization
// gate, and the protected CRUD surface behind it.
func SetupRouter(cfg *config.Config, d Deps) *gin.Engine {
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to Adminboard API"})
	})

	api := r.Group(cfg.Server.APIPrefix)

	authHandler := authapi.NewHandler(d.Auth, d.Logger)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	gate := middleware.NewAuthGate(d.Tokens, d.Auth, d.Logger)

	protected := api.Group("")
	protected.Use(gate.Handle())
	{
		protected.GET("/auth/me", authHandler.Me)

		userHandler := userapi.NewHandler(d.Auth, d.Users, d.Logger)
		users := protected.Group("/users")
		users.GET("", userHandler.List)
		users.GET("/:id", userHandler.Get)

		menuHandler := menuapi.NewHandler(d.Menus, d.Permissions, d.Logger)
		menus := protected.Group("/menus")
		menus.GET("", menuHandler.ListMenus)
		menus.POST("", menuHandler.CreateMenu)
		menus.GET("/:id", menuHandler.GetMenu)
		menus.POST("/:id/sub-menus", menuHandler.CreateSubMenu)

		perms := protected.Group("/permissions")
		perms.GET("", menuHandler.ListPermissions)
		perms.POST("", menuHandler.CreatePermission)
	}

	return r
}
