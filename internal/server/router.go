package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/yungbote/studyai-backend/internal/handlers"
  "github.com/yungbote/studyai-backend/internal/middleware"
)

type RouterConfig struct {
  AllowedOrigins  []string
  AuthMiddleware  *middleware.AuthMiddleware
  ContentHandler  *handlers.ContentHandler
  MediaHandler    *handlers.MediaHandler
  MissionHandler  *handlers.MissionHandler
  UserHandler     *handlers.UserHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  origins := cfg.AllowedOrigins
  if len(origins) == 0 {
    origins = []string{"http://localhost:3000"}
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     origins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  api := router.Group("/api")
  {
    api.GET("/contents", cfg.ContentHandler.ListContents)
    api.GET("/contents/:id", cfg.ContentHandler.GetContent)
    api.GET("/missions", cfg.MissionHandler.ListMissions)
    api.POST("/media/presigned-url", cfg.MediaHandler.PresignedURL)
    api.POST("/media/presigned-urls", cfg.MediaHandler.PresignedURLs)
  }

// ===============
// || Protected ||
// ===============
  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // User
  protected.GET("/user", cfg.UserHandler.GetMe)
  protected.GET("/user/submissions", cfg.UserHandler.ListSubmissions)
  // Missions
  protected.POST("/missions/:id/submissions", cfg.MissionHandler.SubmitMission)
  // Admin content CRUD
  protected.POST("/contents", cfg.ContentHandler.CreateContent)
  protected.PUT("/contents/:id", cfg.ContentHandler.UpdateContent)
  protected.DELETE("/contents/:id", cfg.ContentHandler.DeleteContent)

  return router
}
