package main

import (
	"flag"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"paper-checkin/internal/checkin"
	"paper-checkin/internal/config"
	"paper-checkin/internal/feishu"
	"paper-checkin/internal/handler"
	"paper-checkin/internal/logger"
	"paper-checkin/internal/middleware"
	"paper-checkin/internal/ocr"
	"paper-checkin/internal/service"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	var db *gorm.DB
	if cfg.HasDatabase() {
		var err error
		db, err = cfg.OpenGormDB()
		if err != nil {
			slog.Warn("db connect failed, archive and member login disabled", "err", err)
			db = nil
		}
	}

	var archive *service.ArchiveService
	if db != nil {
		archive = service.NewArchiveService(db)
		slog.Info("record archive enabled")
	}

	ocrClient := ocr.NewClient(cfg.Baidu.APIKey, cfg.Baidu.SecretKey)
	refClient := feishu.NewClient(cfg.Feishu)
	verifier := checkin.NewVerifier(cfg.Verify.Threshold)

	checkinSvc := service.NewCheckinService(ocrClient, refClient, verifier, archive)
	authSvc := service.NewAuthService(db, cfg.Admin)

	checkinH := handler.NewCheckinHandler(checkinSvc, checkin.NewRegistry())
	authH := handler.NewAuthHandler(authSvc)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.POST("/api/login", authH.Login)
	api := r.Group("/api", middleware.JWTAuth())
	api.POST("/checkin/upload", checkinH.Upload)
	api.GET("/checkin/records", checkinH.Records)
	api.GET("/checkin/pending", checkinH.Pending)
	api.POST("/checkin/pending/approve", checkinH.ApproveAll)
	api.POST("/checkin/clear", checkinH.Clear)
	api.GET("/checkin/export", checkinH.Export)
	api.GET("/leaderboard", checkinH.Leaderboard)

	slog.Info("server starting", "addr", cfg.Addr(), "threshold", cfg.Verify.Threshold)
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
