package app

import (
	"database/sql"
	"os"
	"path/filepath"

	"go-leave/internal/balance"
	"go-leave/internal/calendar"
	"go-leave/internal/employee"
	"go-leave/internal/leave"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/notify"
	"go-leave/internal/rbac"
	"go-leave/internal/rbac/infra"
	"go-leave/internal/reminder"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	leadResolver := employee.NewLeadResolver(gormDB)
	dispatcher := notify.NewOutboxDispatcher(outboxRepo)

	leaveService := leave.NewService(
		db,
		leaveRepo,
		balanceRepo,
		employeeRepo,
		leadResolver,
		dispatcher,
		leave.Config{
			AllowOverage: os.Getenv("LEAVE_ALLOW_OVERAGE") == "true",
		},
	)
	balanceService := balance.NewService(db, balanceRepo)
	calendarService := calendar.NewService(leaveRepo)
	reminderService := reminder.NewService(leaveRepo, dispatcher)

	// --- Handlers ---
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	balanceHandler := balance.NewHandler(balanceService)
	calendarHandler := calendar.NewHandler(calendarService)
	reminderHandler := reminder.NewHandler(reminderService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		balance.RegisterRoutes(api, balanceHandler, rbacService)
		calendar.RegisterRoutes(api, calendarHandler, rbacService)
		reminder.RegisterRoutes(api, reminderHandler, rbacService)
	}

	return nil
}
