package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pactumlogic/pactum-server/internal/config"
	"github.com/pactumlogic/pactum-server/internal/handler"
	"github.com/pactumlogic/pactum-server/internal/middleware"
	"github.com/pactumlogic/pactum-server/internal/repository"
	"github.com/pactumlogic/pactum-server/internal/service"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	personRepo := repository.NewPersonRepository(db)
	contractRepo := repository.NewContractRepository(db)

	authSvc := service.NewAuthService(userRepo, redisClient, cfg)
	authHandler := handler.NewAuthHandler(authSvc)

	personSvc := service.NewPersonService(personRepo)
	personHandler := handler.NewPersonHandler(personSvc)

	contractSvc := service.NewContractService(contractRepo, personRepo)
	contractHandler := handler.NewContractHandler(contractSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Client routes
		protected.GET("/clients", personHandler.ListClients)
		protected.GET("/clients/advisors", personHandler.ListAdvisors)
		protected.GET("/clients/advisors-with-contracts", personHandler.ListAdvisorsWithContracts)
		protected.GET("/clients/:id", personHandler.GetPerson)
		protected.POST("/clients", personHandler.CreatePerson)
		protected.PUT("/clients/:id", personHandler.UpdatePerson)
		protected.DELETE("/clients/:id", personHandler.DeletePerson)

		// Contract routes
		protected.GET("/contracts", contractHandler.ListContracts)
		protected.GET("/contracts/recent", contractHandler.ListRecentContracts)
		protected.GET("/contracts/stats", contractHandler.GetStats)
		protected.GET("/contracts/:id", contractHandler.GetContract)
		protected.POST("/contracts", contractHandler.CreateContract)
		protected.PUT("/contracts/:id", contractHandler.UpdateContract)
		protected.DELETE("/contracts/:id", contractHandler.DeleteContract)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
