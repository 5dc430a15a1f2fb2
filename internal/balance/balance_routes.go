package balance

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
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/mine", handler.ListMine)
		balances.GET("/employee/:employeeId", rbac.Authorize(rbacService, "balance", "read_all"), handler.ListByEmployee)
		balances.PUT("", rbac.Authorize(rbacService, "balance", "allocate"), handler.Allocate)
	}
}
