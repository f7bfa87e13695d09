package leaverequest

import (
	"leavedesk/internal/middleware"
	"leavedesk/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		requests.GET("", handler.GetAll)
		requests.GET("/attendance", handler.Attendance)
		requests.GET("/quota", handler.Quota)
		requests.GET("/employee/:employee_id", handler.GetByEmployee)
		requests.GET("/:id", handler.GetById)

		staff := requests.Group("")
		staff.Use(middleware.RoleMiddleware(user.RoleAdmin, user.RoleCoAdmin))
		{
			staff.POST("", middleware.Idempotency(rdb), handler.Create)
			staff.PUT("/:id", handler.Update)
			staff.DELETE("/:id", handler.Delete)
			staff.POST("/bulk-delete", handler.DeleteBatch)
		}

		// Approval is the quota gate; only the elevated role decides.
		admin := requests.Group("")
		admin.Use(middleware.RoleMiddleware(user.RoleAdmin))
		{
			admin.POST("/:id/approve", handler.Approve)
			admin.POST("/:id/reject", handler.Reject)
		}
	}
}
