package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"boardman-api/internal/client"
	"boardman-api/internal/handler"
	"boardman-api/internal/metrics"
	"boardman-api/internal/middleware"
	"boardman-api/internal/repository"
	"boardman-api/internal/service"
)

// Config holds all dependencies for the router
type Config struct {
	DB           *gorm.DB
	RedisClient  *redis.Client
	Logger       *zap.Logger
	Metrics      *metrics.Metrics
	TokenManager service.TokenManager
	Mailer       client.Mailer
	GitHubClient client.GitHubClient
	ClientURL    string
	BasePath     string
}

// Setup creates the Gin engine with all routes and middleware configured
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.ClientURL))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Operational endpoints stay outside the API base path
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", healthCheck)
	r.GET("/ready", readyCheck(cfg.DB, cfg.RedisClient))

	// Wire repositories, services and handlers
	repos := repository.NewRepositories(cfg.DB)
	txManager := repository.NewTxManager(cfg.DB)
	codeRepo := repository.NewCodeRepository(cfg.RedisClient)

	authService := service.NewAuthService(repos.Users, codeRepo, cfg.Mailer, cfg.TokenManager, cfg.Metrics, logger)
	boardService := service.NewBoardService(repos.Boards, repos.Memberships, repos.Invitations, repos.Users, txManager, cfg.Mailer, cfg.ClientURL, cfg.Metrics, logger)
	cardService := service.NewCardService(repos.Cards, repos.Boards, repos.Memberships, txManager, cfg.Metrics, logger)
	taskService := service.NewTaskService(repos.Tasks, repos.Cards, repos.Boards, repos.Memberships, repos.Assignments, repos.Attachments, txManager, cfg.Metrics, logger)
	repoService := service.NewRepoService(cfg.GitHubClient, logger)

	authHandler := handler.NewAuthHandler(authService)
	boardHandler := handler.NewBoardHandler(boardService)
	cardHandler := handler.NewCardHandler(cardService)
	taskHandler := handler.NewTaskHandler(taskService)
	repoHandler := handler.NewRepoHandler(repoService)

	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/api"
	}
	api := r.Group(basePath)

	requireAuth := middleware.Auth(cfg.TokenManager)

	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.SignUp)
		auth.POST("/signin", authHandler.SignIn)
		auth.POST("/verify", middleware.PendingAuth(cfg.TokenManager), authHandler.Verify)
		auth.GET("/signout", authHandler.SignOut)
	}

	boards := api.Group("/boards", requireAuth)
	{
		boards.GET("", boardHandler.ListBoards)
		boards.POST("", boardHandler.CreateBoard)
		boards.GET("/:boardId", boardHandler.GetBoard)
		boards.PUT("/:boardId", boardHandler.UpdateBoard)
		boards.DELETE("/:boardId", boardHandler.DeleteBoard)

		boards.POST("/:boardId/invite", boardHandler.InviteUser)
		boards.DELETE("/:boardId/invite/accept/:invitationId", boardHandler.AcceptInvitation)
		boards.DELETE("/:boardId/invite/reject/:invitationId", boardHandler.RejectInvitation)
		boards.DELETE("/:boardId/members/:memberId", boardHandler.RemoveMember)

		boards.GET("/:boardId/cards", cardHandler.ListCards)
		boards.POST("/:boardId/cards", cardHandler.CreateCard)
		boards.PUT("/:boardId/cards/:cardId", cardHandler.UpdateCard)
		boards.DELETE("/:boardId/cards/:cardId", cardHandler.DeleteCard)

		boards.GET("/:boardId/cards/:cardId/tasks", taskHandler.ListTasks)
		boards.POST("/:boardId/cards/:cardId/tasks", taskHandler.CreateTask)
		boards.GET("/:boardId/cards/:cardId/tasks/:taskId", taskHandler.GetTask)
		boards.PUT("/:boardId/cards/:cardId/tasks/:taskId", taskHandler.UpdateTask)
		boards.PUT("/:boardId/cards/:cardId/tasks/:taskId/newCard", taskHandler.MoveTask)
		boards.DELETE("/:boardId/cards/:cardId/tasks/:taskId", taskHandler.DeleteTask)

		boards.POST("/:boardId/cards/:cardId/tasks/:taskId/assign", taskHandler.AssignTask)
		boards.DELETE("/:boardId/cards/:cardId/tasks/:taskId/assign/:memberId", taskHandler.UnassignTask)

		boards.POST("/:boardId/cards/:cardId/tasks/:taskId/github-attach", taskHandler.AddAttachment)
		boards.DELETE("/:boardId/cards/:cardId/tasks/:taskId/github-attachments/:attachmentId", taskHandler.RemoveAttachment)
	}

	repositories := api.Group("/repositories", requireAuth)
	{
		repositories.POST("/github-info", repoHandler.GetRepoInfo)
	}

	return r
}

// healthCheck reports process liveness
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readyCheck reports whether the backing stores are reachable
func readyCheck(db *gorm.DB, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err != nil || sqlDB.Ping() != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "database"})
				return
			}
		}
		if redisClient != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := redisClient.Ping(ctx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "redis"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
