package holiday

import (
	"leavedesk/internal/middleware"
	"leavedesk/internal/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		holidays.GET("", handler.GetAll)
		holidays.GET("/export/ical", handler.ExportICal)
		holidays.GET("/:id", handler.GetById)

		admin := holidays.Group("")
		admin.Use(middleware.RoleMiddleware(user.RoleAdmin, user.RoleCoAdmin))
		{
			admin.POST("", handler.Create)
			admin.PUT("/:id", handler.Update)
			admin.DELETE("/:id", handler.Delete)
		}
	}
}
