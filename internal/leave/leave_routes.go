package leave

import (
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(), middleware.ExtractUserID(), middleware.RateLimitByUser(rate.Limit(5), 10))
	{
		leaves.GET("", rbac.Authorize(rbacService, "leave", "read_all"), handler.ListByStatus)
		leaves.GET("/mine", handler.ListMine)
		leaves.GET("/approvals", handler.ListApprovals)
		leaves.GET("/employee/:employeeId", rbac.Authorize(rbacService, "leave", "read_all"), handler.ListByEmployee)
		leaves.GET("/:id", rbac.Authorize(rbacService, "leave", "read"), handler.GetByID)

		leaves.POST("", middleware.Idempotency(rdb), rbac.Authorize(rbacService, "leave", "create"), handler.Submit)
		leaves.PUT("/:id", rbac.Authorize(rbacService, "leave", "edit"), handler.Edit)
		leaves.POST("/:id/cancel", rbac.Authorize(rbacService, "leave", "cancel"), handler.Cancel)

		leaves.POST("/:id/approve/lead", middleware.Idempotency(rdb), rbac.Authorize(rbacService, "leave", "approve_lead"), handler.ApproveAsLead)
		leaves.POST("/:id/approve/hr", middleware.Idempotency(rdb), rbac.Authorize(rbacService, "leave", "approve_hr"), handler.ApproveAsHR)
		leaves.POST("/:id/reject", rbac.Authorize(rbacService, "leave", "reject"), handler.Reject)

		leaves.DELETE("/:id", rbac.Authorize(rbacService, "leave", "remove"), handler.Remove)
	}
}
