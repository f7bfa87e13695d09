package attachment

import (
	"leavedesk/internal/middleware"
	"leavedesk/internal/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	attachments := r.Group("/attachments")
	attachments.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		attachments.POST("", handler.Upload)
		attachments.GET("/usage", handler.Usage)

		admin := attachments.Group("")
		admin.Use(middleware.RoleMiddleware(user.RoleAdmin, user.RoleCoAdmin))
		{
			admin.DELETE("/*file_id", handler.Delete)
		}
	}
}
