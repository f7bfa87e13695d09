package employee

import (
	"leavedesk/internal/middleware"
	"leavedesk/internal/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		employees.GET("", handler.GetAll)
		employees.GET("/options", handler.GetOptions)
		employees.GET("/:id", handler.GetById)

		admin := employees.Group("")
		admin.Use(middleware.RoleMiddleware(user.RoleAdmin, user.RoleCoAdmin))
		{
			admin.POST("", handler.Create)
			admin.PUT("/:id", handler.Update)
			admin.DELETE("/:id", handler.Delete)
			admin.POST("/bulk-delete", handler.DeleteBatch)
		}
	}
}
