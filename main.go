package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-splendor/config"
	"go-splendor/const_data"
	"go-splendor/controller"
	"go-splendor/middleware"
	"go-splendor/repository"
	"go-splendor/router"
	"go-splendor/service"
	"go-splendor/utils"
	"go-splendor/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	logger, err := utils.NewLogger(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("服务异常退出", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	source := const_data.FromFiles(cfg.CardsFile, cfg.CollectionsFile)
	if _, err := source.LoadCards(); err != nil {
		return err
	}
	if _, err := source.LoadCollections(); err != nil {
		return err
	}

	opts := ws.Options{Logger: logger}
	var cache service.RoomCache
	if cfg.RedisEnabled {
		rdb, err := repository.NewRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		store := repository.NewRoomStore(rdb)
		opts.Store, cache = store, store
		logger.Info("✅ Redis 连接成功", zap.String("addr", cfg.RedisAddr))
	}
	if cfg.NatsURL != "" {
		nc, err := repository.BrokerConnect(cfg.NatsURL)
		if err != nil {
			return err
		}
		defer nc.Drain()
		opts.Publisher = repository.NewPublisher(nc)
		logger.Info("✅ NATS 连接成功", zap.String("url", cfg.NatsURL))
	}
	var history service.HistoryReader
	if cfg.HistoryDSN != "" {
		h, err := repository.OpenHistory(ctx, cfg.HistoryDSN)
		if err != nil {
			return err
		}
		defer h.Close()
		opts.History, history = h, h
	}

	hub := ws.NewHub(cfg.Game.Ruleset(), source, opts)
	go hub.ScheduleDailyRoomReset(ctx, cfg.RoomResetHour)

	if !cfg.LogDev {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CorsOrigins) == 0 {
		corsConfig.AllowAllOrigins = true // 允许所有来源
	} else {
		corsConfig.AllowOrigins = cfg.CorsOrigins
	}
	r.Use(cors.New(corsConfig))

	rooms := controller.NewRoomController(service.NewRoomService(hub, cache, history))
	router.InitRouter(r, rooms, hub, cfg.AdminToken)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("服务启动", zap.String("addr", cfg.HTTPAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("服务关闭")
	return srv.Shutdown(shutdownCtx)
}
