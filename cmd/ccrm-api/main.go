package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/ccrm-api/internal/handler"
	"github.com/noah-isme/ccrm-api/internal/middleware"
	"github.com/noah-isme/ccrm-api/internal/repository"
	"github.com/noah-isme/ccrm-api/internal/service"
	"github.com/noah-isme/ccrm-api/pkg/config"
	"github.com/noah-isme/ccrm-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/ccrm-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/ccrm-api/pkg/middleware/requestid"
	"github.com/noah-isme/ccrm-api/pkg/storage"
)

// @title Campus Course & Records Manager API
// @version 1.0.0
// @description Admin API for students, courses, enrollments and transcripts
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()

	studentRepo := repository.NewStudentRepository()
	courseRepo := repository.NewCourseRepository()
	enrollmentRepo := repository.NewEnrollmentRepository()

	metricsSvc := service.NewMetricsService()
	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo, metricsSvc, validate, logr)
	transcriptSvc := service.NewTranscriptService(studentRepo, courseRepo, enrollmentSvc, logr)
	dataSvc := service.NewDataService(studentSvc, courseSvc, enrollmentSvc, studentRepo, courseRepo, logr)

	store, err := storage.NewLocalStorage(cfg.Backup.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init backup storage", "error", err)
	}
	backupSvc := service.NewBackupService(store, dataSvc, metricsSvc, logr)

	studentHandler := handler.NewStudentHandler(studentSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	transcriptHandler := handler.NewTranscriptHandler(transcriptSvc)
	dataHandler := handler.NewDataHandler(dataSvc)
	backupHandler := handler.NewBackupHandler(backupSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/students", studentHandler.Create)
		api.GET("/students", studentHandler.List)
		api.GET("/students/:regNo", studentHandler.Get)
		api.PUT("/students/:regNo", studentHandler.Update)
		api.DELETE("/students/:regNo", studentHandler.Deactivate)
		api.GET("/students/:regNo/enrollments", enrollmentHandler.ListForStudent)
		api.GET("/students/:regNo/gpa", enrollmentHandler.GPA)
		api.GET("/students/:regNo/transcript", transcriptHandler.Get)
		api.GET("/students/:regNo/transcript/pdf", transcriptHandler.GetPDF)

		api.POST("/courses", courseHandler.Create)
		api.GET("/courses", courseHandler.List)
		api.GET("/courses/:code", courseHandler.Get)
		api.PUT("/courses/:code", courseHandler.Update)
		api.DELETE("/courses/:code", courseHandler.Delete)
		api.GET("/courses/:code/enrollments", enrollmentHandler.ListForCourse)

		api.POST("/enrollments", enrollmentHandler.Enroll)
		api.DELETE("/enrollments", enrollmentHandler.Unenroll)
		api.PUT("/enrollments/grade", enrollmentHandler.RecordGrade)

		api.POST("/data/import", dataHandler.Import)
		api.POST("/data/export", dataHandler.Export)

		api.POST("/backups", backupHandler.Create)
		api.GET("/backups/latest", backupHandler.Latest)
		api.GET("/backups/size", backupHandler.Size)
		api.GET("/backups/tree", backupHandler.Tree)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
