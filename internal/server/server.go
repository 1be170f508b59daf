package server

import (
	"context"
	"strings"
	"time"

	"sereno.app/mindgarden/internal/config"
	"sereno.app/mindgarden/internal/middleware"

	gameHttp "sereno.app/mindgarden/internal/modules/game/delivery/http"
	gameRepo "sereno.app/mindgarden/internal/modules/game/repository"
	gameService "sereno.app/mindgarden/internal/modules/game/service"

	gardenHttp "sereno.app/mindgarden/internal/modules/garden/delivery/http"
	gardenRepo "sereno.app/mindgarden/internal/modules/garden/repository"
	gardenService "sereno.app/mindgarden/internal/modules/garden/service"

	journalHttp "sereno.app/mindgarden/internal/modules/journal/delivery/http"
	journalRepo "sereno.app/mindgarden/internal/modules/journal/repository"
	journalService "sereno.app/mindgarden/internal/modules/journal/service"

	moodHttp "sereno.app/mindgarden/internal/modules/mood/delivery/http"
	moodRepo "sereno.app/mindgarden/internal/modules/mood/repository"
	moodService "sereno.app/mindgarden/internal/modules/mood/service"

	notiHttp "sereno.app/mindgarden/internal/modules/notification/delivery/http"
	notifRepo "sereno.app/mindgarden/internal/modules/notification/repository"
	notifService "sereno.app/mindgarden/internal/modules/notification/service"

	profileHttp "sereno.app/mindgarden/internal/modules/profile/delivery/http"
	profileService "sereno.app/mindgarden/internal/modules/profile/service"

	resourceHttp "sereno.app/mindgarden/internal/modules/resource/delivery/http"
	resourceRepo "sereno.app/mindgarden/internal/modules/resource/repository"
	resourceService "sereno.app/mindgarden/internal/modules/resource/service"

	searchService "sereno.app/mindgarden/internal/modules/search/service"

	userRepo "sereno.app/mindgarden/internal/modules/user/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	users := userRepo.NewUserRepository(db)

	// Search is optional; without Meilisearch the resource library
	// still serves plain listings.
	var searchSvc searchService.SearchService
	if cfg.MeiliMasterKey != "" {
		meiliHost := cfg.MeiliSearchHost
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		searchSvc = searchService.NewSearchService(meiliClient)
	}

	// Notification Module
	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, redisClient)

	// Garden Module (progression engine)
	gardenRepository := gardenRepo.NewGardenRepository(db)
	gardenSvc := gardenService.NewGardenService(gardenRepository, notificationSvc, redisClient, cfg.ActivityCooldown)
	gardenHandler := gardenHttp.NewGardenHandler(gardenSvc)

	moodRepository := moodRepo.NewMoodRepository(db)
	moodSvc := moodService.NewMoodService(moodRepository, gardenSvc)
	moodHandler := moodHttp.NewMoodHandler(moodSvc)

	journalRepository := journalRepo.NewJournalRepository(db)
	journalSvc := journalService.NewJournalService(journalRepository, gardenSvc)
	journalHandler := journalHttp.NewJournalHandler(journalSvc)

	gameRepository := gameRepo.NewGameRepository(db)
	gameSvc := gameService.NewGameService(gameRepository, gardenSvc)
	gameHandler := gameHttp.NewGameHandler(gameSvc)

	resourceRepository := resourceRepo.NewResourceRepository(db)
	resourceSvc := resourceService.NewResourceService(resourceRepository, gardenSvc, searchSvc)
	resourceHandler := resourceHttp.NewResourceHandler(resourceSvc)

	profileSvc := profileService.NewProfileService(users)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	// Start Decay Job (Background)
	go gardenSvc.StartDecayWorker(context.Background(), cfg.DecayInterval)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(users)

	api := router.Group("/api")

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.POST("/resources", resourceHandler.CreateResource)
			adminGroup.DELETE("/resources/:id", resourceHandler.DeleteResource)
			adminGroup.POST("/garden/decay", gardenHandler.RunDecay)
		}

		// Garden routes
		protected.POST("/garden/activity", gardenHandler.RecordActivity)
		protected.POST("/garden/checkin", gardenHandler.Checkin)
		protected.POST("/garden/water", gardenHandler.WaterTree)
		protected.GET("/garden/state", gardenHandler.GetState)
		protected.GET("/garden/stats", gardenHandler.GetStats)
		protected.GET("/garden/achievements", gardenHandler.GetAchievements)
		protected.PUT("/garden/ambient", gardenHandler.SetAmbientMode)

		// Mood routes
		protected.POST("/moods", moodHandler.CreateMood)
		protected.GET("/moods", moodHandler.GetMoods)
		protected.GET("/moods/summary", moodHandler.GetWeeklySummary)

		// Journal routes
		protected.POST("/journals", journalHandler.CreateJournal)
		protected.GET("/journals", journalHandler.GetJournals)
		protected.GET("/journals/:id", journalHandler.GetJournal)
		protected.PUT("/journals/:id", journalHandler.UpdateJournal)
		protected.DELETE("/journals/:id", journalHandler.DeleteJournal)

		// Game routes
		protected.POST("/games/sessions", gameHandler.CompleteSession)
		protected.GET("/games/sessions", gameHandler.GetSessions)
		protected.GET("/games/progress", gameHandler.GetProgress)

		// Resource routes
		protected.GET("/resources", resourceHandler.GetResources)
		protected.POST("/resources/:id/view", resourceHandler.ViewResource)
		protected.GET("/resources/search-token", resourceHandler.GetSearchToken)

		// Profile routes
		protected.GET("/profile/me", profileHandler.GetCurrentProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
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
	origins := strings.Split(allowedOrigins, ",")

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
