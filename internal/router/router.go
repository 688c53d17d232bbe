package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/HumNoi1/subjective-assessment-api/internal/handler"
	"github.com/HumNoi1/subjective-assessment-api/internal/middleware"
	"github.com/HumNoi1/subjective-assessment-api/internal/service"
	"github.com/HumNoi1/subjective-assessment-api/pkg/config"
	"github.com/HumNoi1/subjective-assessment-api/pkg/logger"
	corsmiddleware "github.com/HumNoi1/subjective-assessment-api/pkg/middleware/cors"
	reqidmiddleware "github.com/HumNoi1/subjective-assessment-api/pkg/middleware/requestid"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Teacher    *handler.TeacherHandler
	Term       *handler.TermHandler
	Class      *handler.ClassHandler
	Subject    *handler.SubjectHandler
	Folder     *handler.FolderHandler
	Student    *handler.StudentHandler
	AnswerKey  *handler.AnswerKeyHandler
	Submission *handler.SubmissionHandler
	Assessment *handler.AssessmentHandler
	Storage    *handler.StorageHandler
	Grading    *handler.GradingHandler
	Report     *handler.ReportHandler
}

// New assembles the gin engine. Everything under the API prefix except
// registration and login sits behind the session gate.
func New(cfg *config.Config, logr *zap.Logger, h Handlers, auth *service.AuthService, metrics *service.MetricsService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JSONCharset())

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	secured := api.Group("")
	secured.Use(middleware.SessionGate(auth))

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.POST("/auth/refresh", h.Auth.Refresh)
	secured.GET("/auth/me", h.Auth.Me)

	secured.GET("/teachers", h.Teacher.List)
	secured.GET("/teachers/:id", h.Teacher.Get)
	secured.PUT("/teachers/:id", h.Teacher.Update)
	secured.GET("/teachers/:id/classes", h.Teacher.Classes)

	secured.GET("/semesters", h.Term.List)
	secured.POST("/semesters", h.Term.Create)

	secured.GET("/classes", h.Class.List)
	secured.GET("/classes/:id", h.Class.Get)
	secured.POST("/classes", h.Class.Create)
	secured.PUT("/classes/:id", h.Class.Update)

	secured.GET("/subjects", h.Subject.List)
	secured.GET("/subjects/:id", h.Subject.Get)
	secured.POST("/subjects", h.Subject.Create)
	secured.PUT("/subjects/:id", h.Subject.Update)

	secured.GET("/folders", h.Folder.List)
	secured.POST("/folders", h.Folder.Create)

	secured.GET("/students", h.Student.List)
	secured.POST("/students", h.Student.Create)

	secured.GET("/assignments", h.AnswerKey.List)
	secured.GET("/assignments/:id", h.AnswerKey.Get)
	secured.POST("/assignments", h.AnswerKey.Create)

	secured.GET("/submissions", h.Submission.List)
	secured.GET("/submissions/:id", h.Submission.Get)
	secured.POST("/submissions", h.Submission.Create)
	secured.GET("/submissions/:id/assessment", h.Submission.Assessment)

	secured.GET("/assessments", h.Assessment.List)
	secured.POST("/assessments", h.Assessment.Create)
	secured.PUT("/assessments/:id/approve", h.Assessment.Approve)

	secured.POST("/storage/upload", h.Storage.Upload)
	secured.DELETE("/storage/file", h.Storage.DeleteFile)

	secured.POST("/embeddings/search", h.Grading.Search)
	secured.POST("/grading/auto", h.Grading.AutoGrade)
	secured.POST("/vector-db/compare", h.Grading.Compare)
	secured.GET("/vector-db/check", h.Grading.Check)

	secured.GET("/reports/folders/:id/grades.pdf", h.Report.FolderGrades)

	return r
}
