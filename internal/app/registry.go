package app

import (
	"database/sql"

	"leavedesk/internal/attachment"
	"leavedesk/internal/auth"
	"leavedesk/internal/employee"
	"leavedesk/internal/holiday"
	"leavedesk/internal/leaverequest"
	"leavedesk/internal/leavetype"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/report"
	"leavedesk/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	store attachment.Store,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveRequestRepo := leaverequest.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(authRepo)
	userService := user.NewService(userRepo)
	employeeService := employee.NewService(db, employeeRepo, rdb)
	leaveTypeService := leavetype.NewService(leaveTypeRepo)
	holidayService := holiday.NewService(holidayRepo)
	leaveRequestService := leaverequest.NewService(
		db,
		leaveRequestRepo,
		employeeRepo,
		leaveTypeRepo,
		store,
		outboxRepo,
	)
	reportService := report.NewService(leaveRequestRepo, employeeRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	holidayHandler := holiday.NewHandler(holidayService)
	attachmentHandler := attachment.NewHandler(store)
	leaveRequestHandler := leaverequest.NewHandler(leaveRequestService)
	reportHandler := report.NewHandler(reportService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler)
		employee.RegisterRoutes(api, employeeHandler)
		leavetype.RegisterRoutes(api, leaveTypeHandler)
		holiday.RegisterRoutes(api, holidayHandler)
		attachment.RegisterRoutes(api, attachmentHandler)
		leaverequest.RegisterRoutes(api, leaveRequestHandler, rdb)
		report.RegisterRoutes(api, reportHandler)
	}

	return nil
}
