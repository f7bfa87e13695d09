package user

import (
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		users.POST("/me/change-password", handler.ChangePassword)

		admin := users.Group("")
		admin.Use(middleware.RoleMiddleware(RoleAdmin))
		{
			admin.GET("", handler.GetAll)
			admin.GET("/:id", handler.GetById)
			admin.POST("", handler.Create)
			admin.POST("/:id/reset-password", handler.ResetPassword)
			admin.PATCH("/:id/status", handler.ToggleStatus)
			admin.DELETE("/:id", handler.Delete)
		}
	}
}
