package report

import (
	"leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		reports.GET("/dashboard", handler.Dashboard)
		reports.GET("/monthly-series", handler.MonthlySeries)
		reports.GET("/top-leave-takers", handler.TopLeaveTakers)
		reports.GET("/type-distribution", handler.TypeDistribution)
		reports.GET("/employees/:employee_id/breakdown", handler.EmployeeBreakdown)
		reports.GET("/export/excel", handler.ExportExcel)
		reports.GET("/export/pdf", handler.ExportPDF)
	}
}
