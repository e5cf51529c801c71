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

	"github.com/JuanAndresGH-hub/marketplace/internal/core/auth"
	"github.com/JuanAndresGH-hub/marketplace/internal/core/cache"
	"github.com/JuanAndresGH-hub/marketplace/internal/core/config"
	"github.com/JuanAndresGH-hub/marketplace/internal/core/database"
	"github.com/JuanAndresGH-hub/marketplace/internal/core/logger"
	"github.com/JuanAndresGH-hub/marketplace/internal/core/server"
	"github.com/JuanAndresGH-hub/marketplace/internal/domain"
	"github.com/JuanAndresGH-hub/marketplace/internal/repo"
	"github.com/JuanAndresGH-hub/marketplace/internal/service"
	"github.com/JuanAndresGH-hub/marketplace/internal/transport/http/handler"
	"github.com/JuanAndresGH-hub/marketplace/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// 密钥检查：太短或者非 dev 用兜底密钥都不给起
	if warn, err := cfg.VerifySecret(); err != nil {
		log.Fatal("jwt secret check", zap.Error(err))
	} else if warn != "" {
		log.Warn(warn)
	}

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	// 自动迁移
	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}, &domain.Product{}, &domain.CartLine{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// JWT
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	// Redis 可选：没配地址就走纯 DB
	var rc *cache.Cache
	if cfg.Redis.Addr != "" {
		rc = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info("redis cache on", zap.String("addr", cfg.Redis.Addr))
	}

	// 依赖装配
	userRepo := repo.NewUserRepo(db)
	productRepo := repo.NewProductRepo(db)
	cartRepo := repo.NewCartRepo(db)

	authSvc := service.NewAuthService(userRepo, jwter)
	resolver := service.NewIdentityResolver(jwter, userRepo)
	cartSvc := service.NewCartService(cartRepo, userRepo, productRepo)
	productSvc := service.NewProductService(productRepo, rc)

	router.Register(handler.NewCatalogModule(productSvc))

	// 路由（用户端）
	r := router.NewAPIEngine(log, resolver,
		handler.NewAuthHandler(authSvc),
		handler.NewCartHandler(cartSvc),
	)

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("market api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("market api start FAILED", zap.Error(err))
		}
	}()
	log.Info("market api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("market api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
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
