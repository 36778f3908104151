package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"neuroscan/internal/app/domains/classifier"
	"neuroscan/internal/app/domains/modules/mdpatient"
	"neuroscan/internal/app/domains/modules/mdthumbnail"
	"neuroscan/internal/app/domains/repo/rppatient"
	"neuroscan/internal/app/domains/services/svanalysis"
	"neuroscan/internal/app/pkg/idgen"
	"neuroscan/internal/app/server/handlers/page"
	"neuroscan/internal/app/server/handlers/patient"
	"neuroscan/internal/app/server/routers"
	"neuroscan/pkg/config"
	"neuroscan/pkg/infra/redis"
	"neuroscan/pkg/lmstfy"
	"neuroscan/pkg/logger"
	"neuroscan/pkg/storage"
)

// App 应用依赖集合（启动时构建一次）
type App struct {
	Config *config.Config
	Engine *gin.Engine
	Logger logger.Logger
}

// InitializeApp 按依赖顺序构建应用，返回的 cleanup 负责释放连接
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// 1. 日志
	zapLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		return nil, cleanup, fmt.Errorf("create logger failed: %w", err)
	}
	closers = append(closers, func() { _ = zapLogger.Sync() })

	// 2. MySQL
	db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN), &gorm.Config{})
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("connect mysql failed: %w", err)
	}
	closers = append(closers, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	// 3. Redis（Smart Wait）
	pubsub, err := redis.NewPubSub(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	closers = append(closers, func() { _ = pubsub.Close() })

	// 4. 上传文件存储
	store, err := storage.NewOsUploadStore(cfg.Storage.UploadDir, cfg.MaxUploadBytes())
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}

	// 5. 领域层
	lmstfyClient := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	patientModule := mdpatient.NewPatientModule(rppatient.NewPatientRepository(db))
	thumbnailModule := mdthumbnail.NewThumbnailModule(lmstfyClient, pubsub, cfg.Lmstfy.ThumbnailQueue)

	analysisService := svanalysis.NewAnalysisService(
		patientModule,
		thumbnailModule,
		store,
		classifier.New(classifier.WithSeed(cfg.Classifier.Seed)),
		idgen.NewSnowflakeIDGenerator(cfg.App.MachineID),
		zapLogger,
	)

	// 6. HTTP
	engine, err := routers.SetupRoutes(
		page.NewPageHandler(analysisService, zapLogger),
		patient.NewPatientHandler(analysisService, zapLogger),
		routers.Options{
			ServiceName:    cfg.App.Name,
			MaxUploadBytes: cfg.MaxUploadBytes(),
			Logger:         zapLogger,
		},
	)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}

	log.Printf("App initialized: upload_dir=%s, thumbnail_queue=%s", cfg.Storage.UploadDir, cfg.Lmstfy.ThumbnailQueue)

	return &App{
		Config: cfg,
		Engine: engine,
		Logger: zapLogger,
	}, cleanup, nil
}
