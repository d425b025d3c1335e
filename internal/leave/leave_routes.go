package leave

import (
	"github.com/DannielJohn120/Employee-Leave-Management-Project/internal/middleware"
	"github.com/DannielJohn120/Employee-Leave-Management-Project/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		leaves.GET("", handler.GetAll)
		leaves.GET("/:id", handler.GetById)
		leaves.POST("", middleware.Idempotency(rdb), handler.Create)
		leaves.POST("/:id/approve", middleware.RoleMiddleware(user.RoleHR), handler.Approve)
		leaves.POST("/:id/reject", middleware.RoleMiddleware(user.RoleHR), handler.Reject)
	}
}
