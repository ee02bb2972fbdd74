package leave

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the leave API under r. guards run on every route,
// authentication first; idempotency protects submissions that carry an
// Idempotency-Key.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	idempotency gin.HandlerFunc,
	guards ...gin.HandlerFunc,
) {
	leaves := r.Group("/leaves")
	leaves.Use(guards...)
	{
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), idempotency, handler.Submit)
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.GetAll)
		leaves.GET("/documents/size", middleware.RBACAuthorize(rbacService, "document", "read"), handler.DocumentSize)
		leaves.GET("/managers/:manager_id", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.GetByManager)
		leaves.GET("/employees/:employee_id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetByEmployee)
		leaves.GET("/employees/:employee_id/balances", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.Balances)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetById)
		leaves.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave", "update"), handler.Update)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave", "delete"), handler.Delete)
		leaves.PUT("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Approve)
		leaves.PUT("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Reject)
	}
}
