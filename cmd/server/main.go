package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/HumNoi1/subjective-assessment-api/api/swagger"
	"github.com/HumNoi1/subjective-assessment-api/internal/embedding"
	"github.com/HumNoi1/subjective-assessment-api/internal/handler"
	"github.com/HumNoi1/subjective-assessment-api/internal/repository"
	"github.com/HumNoi1/subjective-assessment-api/internal/router"
	"github.com/HumNoi1/subjective-assessment-api/internal/service"
	"github.com/HumNoi1/subjective-assessment-api/internal/vector"
	"github.com/HumNoi1/subjective-assessment-api/pkg/config"
	"github.com/HumNoi1/subjective-assessment-api/pkg/database"
	"github.com/HumNoi1/subjective-assessment-api/pkg/export"
	"github.com/HumNoi1/subjective-assessment-api/pkg/logger"
	"github.com/HumNoi1/subjective-assessment-api/pkg/sessionstore"
	"github.com/HumNoi1/subjective-assessment-api/pkg/storage"
)

// @title Subjective Assessment API
// @version 1.0.0
// @description Session-gated grading backend for subjective exam answers
// @BasePath /api
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	sessions, err := sessionstore.New(cfg.Session)
	if err != nil {
		logr.Fatal("failed to connect to session store", zap.Error(err))
	}
	defer sessions.Close()

	vectorStore, err := vector.NewQdrantStore(cfg.Vector)
	if err != nil {
		logr.Fatal("failed to connect to vector store", zap.Error(err))
	}
	defer vectorStore.Close()

	fileStore, err := storage.NewLocalStorage(cfg.Storage.BaseDir)
	if err != nil {
		logr.Fatal("failed to init file storage", zap.Error(err))
	}

	embedder := embedding.NewClient(cfg.Embedding)
	validate := validator.New()

	teacherRepo := repository.NewTeacherRepository(db)
	termRepo := repository.NewTermRepository(db)
	classRepo := repository.NewClassRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	folderRepo := repository.NewFolderRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	answerKeyRepo := repository.NewAnswerKeyRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(teacherRepo, sessions, validate, logr, cfg.JWT)
	teacherSvc := service.NewTeacherService(teacherRepo, classRepo, validate, logr)
	termSvc := service.NewTermService(termRepo, validate, logr)
	classSvc := service.NewClassService(classRepo, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, validate, logr)
	folderSvc := service.NewFolderService(folderRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	answerKeySvc := service.NewAnswerKeyService(answerKeyRepo, validate, logr)
	submissionSvc := service.NewSubmissionService(submissionRepo, validate, logr)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, validate, logr)
	storageSvc := service.NewStorageService(fileStore, logr)
	gradingSvc := service.NewGradingService(answerKeyRepo, submissionRepo, assessmentRepo, embedder, vectorStore, nil, metricsSvc, logr, cfg.Grading)
	reportSvc := service.NewReportService(folderRepo, assessmentRepo, export.NewPDFExporter(), logr)

	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Teacher:    handler.NewTeacherHandler(teacherSvc),
		Term:       handler.NewTermHandler(termSvc),
		Class:      handler.NewClassHandler(classSvc),
		Subject:    handler.NewSubjectHandler(subjectSvc),
		Folder:     handler.NewFolderHandler(folderSvc),
		Student:    handler.NewStudentHandler(studentSvc),
		AnswerKey:  handler.NewAnswerKeyHandler(answerKeySvc),
		Submission: handler.NewSubmissionHandler(submissionSvc, assessmentSvc),
		Assessment: handler.NewAssessmentHandler(assessmentSvc),
		Storage:    handler.NewStorageHandler(storageSvc),
		Grading:    handler.NewGradingHandler(gradingSvc, metricsSvc),
		Report:     handler.NewReportHandler(reportSvc),
	}

	r := router.New(cfg, logr, handlers, authSvc, metricsSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
