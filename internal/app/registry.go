package app

import (
	"database/sql"
	"fmt"

	"go-leave/internal/balance"
	"go-leave/internal/config"
	"go-leave/internal/leave"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/middleware"
	"go-leave/internal/notification"
	"go-leave/internal/policy"
	"go-leave/internal/rbac"
	"go-leave/internal/rbac/infra"
	"go-leave/internal/rbac/rbac_http"
	"go-leave/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// newNotifier picks how leave e-mails leave the API process.
func newNotifier(cfg config.Config, db *sql.DB, logger *zap.Logger) (leave.Notifier, error) {
	switch cfg.NotifyMode {
	case config.NotifyModeOutbox:
		return leave.NewOutboxNotifier(kafka.NewOutboxRepository(db)), nil
	case config.NotifyModeDirect, "":
		return leave.NewMailNotifier(notification.NewMailer(cfg, logger)), nil
	default:
		return nil, fmt.Errorf("unknown notify mode %q", cfg.NotifyMode)
	}
}

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	capWindow, err := policy.ParseCapWindow(cfg.LeaveCapWindow)
	if err != nil {
		return err
	}

	// --- Infrastructure ---
	files, err := storage.NewLocalStore(cfg.UploadDir, logger)
	if err != nil {
		return err
	}
	notifier, err := newNotifier(cfg, db, logger)
	if err != nil {
		return err
	}

	// --- Repositories ---
	leaveRepo := leave.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBACModelPath, cfg.RBACPolicyPath)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	balanceService := balance.NewService(balanceRepo, rdb, logger)
	leaveService := leave.NewService(
		db,
		leaveRepo,
		balanceRepo,
		balanceService,
		files,
		notifier,
		leave.ServiceConfig{
			CapWindow:        capWindow,
			BaseURL:          cfg.AppBaseURL,
			MaxDocumentBytes: cfg.MaxUploadBytes,
		},
		logger,
	)

	// --- Handlers ---
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Middleware ---
	router.MaxMultipartMemory = cfg.MaxUploadBytes
	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimitPerSecond*4), cfg.RateLimitBurst*4),
	)
	auth := middleware.AuthMiddleware(cfg.JWTSecret)
	limiter := middleware.RateLimitByUser(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst)
	idempotency := middleware.Idempotency(rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		leave.RegisterRoutes(api, leaveHandler, rbacService, idempotency, auth, limiter)
		rbac_http.RegisterRoutes(api, rbacHandler, rbacService, auth, limiter)
	}

	return nil
}
