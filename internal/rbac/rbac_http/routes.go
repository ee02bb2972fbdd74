package rbac_http

import (
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *rbac.Handler, service rbac.Service, guards ...gin.HandlerFunc) {
	group := r.Group("/rbac")
	group.Use(guards...)
	{
		group.POST("/enforce", middleware.RBACAuthorize(service, "rbac", "read"), handler.Enforce)
		group.GET("/permissions", middleware.RBACAuthorize(service, "rbac", "read"), handler.Permissions)
	}
}
