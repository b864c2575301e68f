package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/placement-portal/config"
	"github.com/lshigami/placement-portal/database"
	_ "github.com/lshigami/placement-portal/docs" // Swagger docs - generated by swag init
	"github.com/lshigami/placement-portal/internal/auth"
	"github.com/lshigami/placement-portal/internal/cache"
	"github.com/lshigami/placement-portal/internal/controller"
	adminctrl "github.com/lshigami/placement-portal/internal/controller/admin"
	userctrl "github.com/lshigami/placement-portal/internal/controller/user"
	"github.com/lshigami/placement-portal/internal/logger"
	"github.com/lshigami/placement-portal/internal/metrics"
	"github.com/lshigami/placement-portal/internal/middleware"
	"github.com/lshigami/placement-portal/internal/model"
	"github.com/lshigami/placement-portal/internal/rag"
	"github.com/lshigami/placement-portal/internal/repository"
	"github.com/lshigami/placement-portal/internal/router"
	"github.com/lshigami/placement-portal/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Placement Training Portal API
// @version 1.0
// @description Assessments, attempts, results and the study assistant for students; content management and reports for administrators.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			metrics.NewRegistry,
			metrics.NewMetrics,
			auth.NewTokenManager,
			cache.NewContextCache,
			NewRAGClient,
			NewChatLimiter,
			router.NewEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewAssessmentRepository,
			repository.NewQuestionRepository,
			repository.NewStudentAssessmentRepository,
			repository.NewStudentAnswerRepository,
			repository.NewChatbotRepository,
			repository.NewReportRepository,
		),

		fx.Provide(
			service.NewAuthService,
			func(s service.AuthService) middleware.Authenticator { return s },
			service.NewAdminUserService,
			service.NewUserAssessmentService,
			service.NewAttemptService,
			service.NewResultService,
			service.NewLimitedResponder,
			func(cfg *config.Config, client rag.Client) service.KnowledgeSyncer {
				return service.NewKnowledgeSyncer(client, cfg.RAG.Enabled)
			},
			func(
				cfg *config.Config,
				assessmentRepo repository.AssessmentRepository,
				attemptRepo repository.StudentAssessmentRepository,
				answerRepo repository.StudentAnswerRepository,
				contextCache cache.ContextCache,
			) service.ContextBuilder {
				return service.NewContextBuilder(assessmentRepo, attemptRepo, answerRepo, contextCache, cfg.Cache.ContextTTL)
			},
			func(
				cfg *config.Config,
				client rag.Client,
				builder service.ContextBuilder,
				limited service.LimitedResponder,
				chatRepo repository.ChatbotRepository,
				userRepo repository.UserRepository,
				contextCache cache.ContextCache,
				m *metrics.Metrics,
			) service.ChatService {
				return service.NewChatService(client, cfg.RAG.Enabled, builder, limited, chatRepo, userRepo, contextCache, m)
			},
			service.NewAdminAssessmentService,
			service.NewAdminQuestionService,
			service.NewQuestionDraftService,
			service.NewReportService,
		),

		fx.Provide(
			controller.NewHealthController,
			controller.NewAuthController,
			userctrl.NewAssessmentController,
			userctrl.NewResultController,
			userctrl.NewChatController,
			adminctrl.NewAssessmentController,
			adminctrl.NewQuestionController,
			adminctrl.NewReportController,
			adminctrl.NewUserController,
			adminctrl.NewChatController,
		),

		fx.Invoke(logger.Configure),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedAdmin),
		fx.Invoke(RegisterShutdownHooks),
		fx.Invoke(StartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Application stop failed")
	}
}

func NewRAGClient(cfg *config.Config, m *metrics.Metrics) rag.Client {
	return rag.NewClient(rag.ConfigFrom(cfg), &http.Client{}, m)
}

func NewChatLimiter(cfg *config.Config) *middleware.IPRateLimiter {
	return middleware.NewIPRateLimiter(cfg.RateLimit.ChatPerMinute, cfg.RateLimit.ChatBurst, 5*time.Minute)
}

// RegisterShutdownHooks releases background resources once the server has stopped.
func RegisterShutdownHooks(lc fx.Lifecycle, contextCache cache.ContextCache, syncer service.KnowledgeSyncer, limiter *middleware.IPRateLimiter) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			limiter.Stop()
			syncer.Wait()
			if err := contextCache.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close context cache")
			}
			return nil
		},
	})
}

// StartServer manages the HTTP server lifecycle.
func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config) {
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Placement portal API starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// SeedAdmin creates the bootstrap administrator from ADMIN_EMAIL and ADMIN_PASSWORD.
func SeedAdmin(cfg *config.Config, authService service.AuthService) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := authService.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Error().Err(err).Msg("Failed to seed administrator")
		return err
	}
	return nil
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.Assessment{},
		&model.AssessmentQuestion{},
		&model.StudentAssessment{},
		&model.StudentAnswer{},
		&model.ChatbotConversation{},
		&model.ChatbotMessage{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
