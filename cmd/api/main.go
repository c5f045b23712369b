package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"lawlink-api/internal/core/auth"
	"lawlink-api/internal/core/cache"
	"lawlink-api/internal/core/config"
	"lawlink-api/internal/core/database"
	"lawlink-api/internal/core/logger"
	"lawlink-api/internal/core/server"
	"lawlink-api/internal/domain"
	"lawlink-api/internal/repo"
	"lawlink-api/internal/service"
	"lawlink-api/internal/transport/http/handler"
	"lawlink-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
		Enable:     cfg.Log.RotateEnable,
		Filename:   cfg.Log.RotateFilename,
		MaxSizeMB:  cfg.Log.RotateMaxSizeMB,
		MaxBackups: cfg.Log.RotateMaxBackups,
		MaxAgeDays: cfg.Log.RotateMaxAgeDays,
		Compress:   cfg.Log.RotateCompress,
	})
	defer cleanup()

	// 数据库（失败直接 Fatal），进程级生命周期：启动建连，退出关闭
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// 目录缓存
	rc := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// JWT
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.TokenTTLHours) * time.Hour,
	}

	// 依赖装配
	users := repo.NewUserRepo(db)
	authSvc := service.NewAuthService(users, jwter, log)
	profSvc := service.NewProfileService(users, rc)
	lawSvc := service.NewLawyerService(users, rc)
	userSvc := service.NewUserService(users)

	reg := router.NewRegistry().Add(
		handler.NewAuthHandler(authSvc, jwter, log),
		handler.NewProfileHandler(profSvc, jwter, log),
		handler.NewLawyerHandler(lawSvc, log),
		handler.NewAdminHandler(userSvc, jwter, log),
		handler.NewPageHandler(),
	)
	r := router.NewEngine(router.Deps{Log: log, JWT: jwter, Registry: reg})

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start FAILED", zap.Error(err))
		}
	}()
	log.Info("api started SUCCESS")

	// 优雅关闭：先停 HTTP，再收掉 redis / db
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	_ = rc.Close()
	_ = database.Close(db)
	log.Info("api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.Open(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
