package app

import (
	"os"

	"github.com/DannielJohn120/Employee-Leave-Management-Project/internal/leave"
	"github.com/DannielJohn120/Employee-Leave-Management-Project/internal/shared/connection"
	"github.com/DannielJohn120/Employee-Leave-Management-Project/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	// users first; leaves carry two foreign keys into it
	if err := gormDB.AutoMigrate(&user.User{}, &leave.LeaveRequest{}); err != nil {
		return err
	}
	zap.L().Info("database schema migrated")

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	return registerModules(router, gormDB, redisClient)
}
