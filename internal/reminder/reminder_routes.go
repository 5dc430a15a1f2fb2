package reminder

import (
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	reminders := r.Group("/reminders")
	reminders.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware("hr", "admin"))
	{
		reminders.GET("/transition-plan", rbac.Authorize(rbacService, "reminder", "read"), handler.List)
		reminders.POST("/transition-plan/send", rbac.Authorize(rbacService, "reminder", "send"), handler.Send)
	}
}
