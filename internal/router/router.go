package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement-portal/config"
	"github.com/lshigami/placement-portal/internal/controller"
	adminctrl "github.com/lshigami/placement-portal/internal/controller/admin"
	userctrl "github.com/lshigami/placement-portal/internal/controller/user"
	"github.com/lshigami/placement-portal/internal/metrics"
	"github.com/lshigami/placement-portal/internal/middleware"
	"github.com/lshigami/placement-portal/internal/model"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

// Params collects everything the HTTP surface needs.
type Params struct {
	fx.In

	Config        *config.Config
	Metrics       *metrics.Metrics
	Authenticator middleware.Authenticator
	ChatLimiter   *middleware.IPRateLimiter

	Health *controller.HealthController
	Auth   *controller.AuthController

	StudentAssessments *userctrl.AssessmentController
	StudentResults     *userctrl.ResultController
	StudentChat        *userctrl.ChatController

	AdminAssessments *adminctrl.AssessmentController
	AdminQuestions   *adminctrl.QuestionController
	AdminReports     *adminctrl.ReportController
	AdminUsers       *adminctrl.UserController
	AdminChat        *adminctrl.ChatController
}

// NewEngine builds the gin engine with middleware and every route registered.
func NewEngine(p Params) *gin.Engine {
	if p.Config.Server.Mode != "" {
		gin.SetMode(p.Config.Server.Mode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.Metrics(p.Metrics))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", p.Health.Healthz)
	r.GET("/metrics", gin.WrapH(p.Metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	authn := middleware.AuthJWT(p.Authenticator)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", p.Auth.Register)
		authGroup.POST("/login", p.Auth.Login)
		authGroup.GET("/me", authn, p.Auth.Me)
		authGroup.PUT("/me", authn, p.Auth.UpdateMe)
	}

	student := api.Group("/student", authn, middleware.RequireRole(model.RoleStudent), middleware.RequireApproved())
	{
		student.GET("/assessments", p.StudentAssessments.ListAssessments)
		student.GET("/assessments/:id", p.StudentAssessments.ShowAssessment)
		student.POST("/assessments/:id/start", p.StudentAssessments.StartAttempt)
		student.GET("/assessments/:id/take", p.StudentAssessments.TakeAttempt)
		student.POST("/assessments/:id/save-progress", p.StudentAssessments.SaveProgress)
		student.POST("/assessments/:id/submit", p.StudentAssessments.SubmitAttempt)

		student.GET("/results", p.StudentResults.ListResults)
		student.GET("/results/:attempt_id", p.StudentResults.ShowResult)
		student.GET("/dashboard", p.StudentResults.Dashboard)
		student.GET("/history", p.StudentResults.History)
		student.GET("/analytics", p.StudentResults.Analytics)

		student.POST("/rag-chat", middleware.RateLimitByIP(p.ChatLimiter, p.StudentChat.RateLimited), p.StudentChat.Chat)
		student.GET("/rag-health", p.StudentChat.Health)
		student.GET("/chat/offline", p.StudentChat.Offline)
		student.GET("/chat/conversations", p.StudentChat.Conversations)
		student.GET("/chat/conversations/:session_id", p.StudentChat.Conversation)
	}

	admin := api.Group("/admin", authn, middleware.RequireRole(model.RoleAdmin))
	{
		admin.GET("/assessments", p.AdminAssessments.ListAssessments)
		admin.POST("/assessments", p.AdminAssessments.CreateAssessment)
		admin.GET("/assessments/:id", p.AdminAssessments.GetAssessment)
		admin.PUT("/assessments/:id", p.AdminAssessments.UpdateAssessment)
		admin.DELETE("/assessments/:id", p.AdminAssessments.DeleteAssessment)
		admin.POST("/assessments/:id/toggle-status", p.AdminAssessments.ToggleStatus)
		admin.POST("/assessments/:id/duplicate", p.AdminAssessments.DuplicateAssessment)
		admin.POST("/assessments/:id/question-drafts", p.AdminAssessments.DraftQuestions)

		admin.GET("/assessments/:id/questions", p.AdminQuestions.ListAssessmentQuestions)
		admin.POST("/assessments/:id/questions", p.AdminQuestions.CreateAssessmentQuestion)
		admin.POST("/assessments/:id/questions/attach", p.AdminQuestions.AttachQuestion)
		admin.POST("/assessments/:id/questions/import", p.AdminQuestions.ImportAssessmentQuestions)
		admin.DELETE("/assessments/:id/questions/:question_id", p.AdminQuestions.DetachQuestion)

		admin.GET("/questions", p.AdminQuestions.ListQuestions)
		admin.POST("/questions", p.AdminQuestions.CreateQuestion)
		admin.PUT("/questions/:id", p.AdminQuestions.UpdateQuestion)
		admin.DELETE("/questions/:id", p.AdminQuestions.DeleteQuestion)

		admin.GET("/reports/overview", p.AdminReports.Overview)
		admin.GET("/reports/assessments/:id", p.AdminReports.AssessmentReport)
		admin.GET("/reports/students", p.AdminReports.StudentPerformance)
		admin.GET("/reports/categories", p.AdminReports.CategoryAnalysis)
		admin.GET("/reports/export", p.AdminReports.Export)

		admin.GET("/users", p.AdminUsers.ListUsers)
		admin.PUT("/users/:id/approval", p.AdminUsers.SetApproval)

		admin.POST("/chat/sync", p.AdminChat.SyncKnowledge)
	}

	return r
}
