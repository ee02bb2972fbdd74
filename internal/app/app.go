package app

import (
	"go-leave/internal/config"
	"go-leave/internal/shared/connection"
	"go-leave/migrations"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const connectRetries = 5

func dbConfig(cfg config.Config) connection.DBConfig {
	return connection.DBConfig{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		Port:     cfg.DBPort,
		SSLMode:  cfg.DBSSLMode,
	}
}

// BuildApp connects the API process to its stores and registers every route
// on router. The returned cleanup closes those connections.
func BuildApp(cfg config.Config, router *gin.Engine) (func(), error) {
	logger := zap.L().Named("app.api")

	gormDB, err := connection.ConnectGORMWithRetry(dbConfig(cfg), connectRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := connection.RunMigrations(sqlDB, migrations.FS); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("database migrations applied")
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if err := registerModules(router, cfg, sqlDB, gormDB, redisClient); err != nil {
		_ = redisClient.Close()
		_ = sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		_ = redisClient.Close()
		_ = sqlDB.Close()
	}
	return cleanup, nil
}
