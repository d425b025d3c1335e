package app

import (
	"github.com/DannielJohn120/Employee-Leave-Management-Project/internal/auth"
	"github.com/DannielJohn120/Employee-Leave-Management-Project/internal/leave"
	"github.com/DannielJohn120/Employee-Leave-Management-Project/internal/middleware"
	"github.com/DannielJohn120/Employee-Leave-Management-Project/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)

	// --- Services ---
	authService := auth.NewService(authRepo, rdb)
	userService := user.NewService(userRepo, rdb)
	leaveService := leave.NewService(gormDB, leaveRepo, userRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)

	// --- Routes Registration ---
	router.Use(middleware.ContextLogger(zap.L()))

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler)
		leave.RegisterRoutes(api, leaveHandler, rdb)
	}

	return nil
}
