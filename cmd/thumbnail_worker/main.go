package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"neuroscan/internal/worker"
	"neuroscan/internal/worker/domains"
	"neuroscan/internal/worker/domains/handlers/thumbnail"
	"neuroscan/pkg/config"
	"neuroscan/pkg/infra/mysql"
	"neuroscan/pkg/infra/redis"
	"neuroscan/pkg/lmstfy"
	"neuroscan/pkg/logger"
	"neuroscan/pkg/storage"
)

var (
	configPath = flag.String("config", config.DefaultPath, "配置文件路径")
)

func main() {
	flag.Parse()

	log.Println("========================================")
	log.Println("  Thumbnail Worker Starting...")
	log.Println("========================================")

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateWorker(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}
	log.Printf("Config loaded: %s, env: %s, log_level: %s\n", cfg.App.Name, cfg.App.Env, cfg.App.LogLevel)

	// 2. 初始化 Logger
	zapLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	// 3. 初始化依赖
	patientDAO, err := mysql.NewPatientDAO(cfg.MySQL.DSN)
	if err != nil {
		log.Fatalf("Failed to create PatientDAO: %v", err)
	}
	defer patientDAO.Close()

	pubsub, err := redis.NewPubSub(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to create Redis PubSub: %v", err)
	}
	defer pubsub.Close()

	// 与 apiserver 共用上传目录，缩略图不受单文件大小限制
	store, err := storage.NewOsUploadStore(cfg.Storage.UploadDir, 0)
	if err != nil {
		log.Fatalf("Failed to open upload dir: %v", err)
	}

	lmstfyClient := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)

	handlers := domains.NewHandlerMap(thumbnail.Deps{
		Store:    store,
		DAO:      patientDAO,
		Notifier: pubsub,
		Size:     cfg.Thumbnail.Size,
		Logger:   zapLogger,
	})

	// 4. 创建 Manager
	mgr, err := worker.NewManagerInstance(cfg, lmstfyClient, domains.GetProcess(zapLogger, handlers), zapLogger)
	if err != nil {
		log.Fatalf("Failed to create manager: %v", err)
	}

	// 5. 启动 Manager（goroutine）
	go func() {
		if err := mgr.Start(); err != nil {
			log.Fatalf("Manager start failed: %v", err)
		}
	}()

	// 6. 队列指标
	var metricsServer *http.Server
	if cfg.Thumbnail.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{Addr: cfg.Thumbnail.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Metrics server error: %v", err)
			}
		}()
		log.Printf("Metrics listening on %s", cfg.Thumbnail.MetricsAddr)
	}

	log.Println("Worker started. Press Ctrl+C to shutdown.")

	// 7. 等待退出信号
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	log.Printf("Received signal: %v, shutting down worker...", sig)

	// 8. 优雅关闭 Manager
	mgr.Shutdown()

	if metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = metricsServer.Shutdown(ctx)
		cancel()
	}

	log.Println("Worker exited gracefully")
}
