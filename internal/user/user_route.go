package user

import (
	"github.com/DannielJohn120/Employee-Leave-Management-Project/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		users.GET("", middleware.RoleMiddleware(RoleHR), handler.GetAll)
		users.GET("/:id", handler.GetById)
		users.PUT("/me/password", middleware.RateLimitByUser(2, 5), handler.ChangePassword)
	}
}
