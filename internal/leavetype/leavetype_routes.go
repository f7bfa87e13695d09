package leavetype

import (
	"leavedesk/internal/middleware"
	"leavedesk/internal/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		types.GET("", handler.GetAll)
		types.GET("/:id", handler.GetById)

		admin := types.Group("")
		admin.Use(middleware.RoleMiddleware(user.RoleAdmin, user.RoleCoAdmin))
		{
			admin.POST("", handler.Create)
			admin.PUT("/:id", handler.Update)
			admin.DELETE("/:id", handler.Delete)
		}
	}
}
