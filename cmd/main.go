package main

import (
  "context"
  "fmt"
  "os"
  "strings"
  "github.com/aws/aws-sdk-go-v2/config"
  "github.com/yungbote/studyai-backend/internal/logger"
  "github.com/yungbote/studyai-backend/internal/utils"
  "github.com/yungbote/studyai-backend/internal/db"
  "github.com/yungbote/studyai-backend/internal/repos"
  "github.com/yungbote/studyai-backend/internal/services"
  "github.com/yungbote/studyai-backend/internal/handlers"
  "github.com/yungbote/studyai-backend/internal/middleware"
  "github.com/yungbote/studyai-backend/internal/server"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  region := utils.GetEnv("APP_AWS_REGION", "us-east-1", log)
  sessionSecret := utils.GetEnv("SESSION_SECRET_KEY", "", log)
  if sessionSecret == "" {
    log.Error("SESSION_SECRET_KEY is not set")
    os.Exit(1)
  }
  allowedOrigins := strings.Split(utils.GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000", log), ",")

  // AWS clients
  awsCfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
  if err != nil {
    log.Error("Could not load AWS config", "error", err)
    os.Exit(1)
  }
  dynamoService := db.NewDynamoService(awsCfg, log)
  theDB := dynamoService.Client()
  tables := dynamoService.Tables()

  // Repos
  log.Info("Setting up Repos from main...")
  contentRepo := repos.NewContentRepo(theDB, tables.Contents, log)
  userRepo := repos.NewUserRepo(theDB, tables.Users, log)
  submissionRepo := repos.NewSubmissionRepo(theDB, tables.Submissions, log)
  missionRepo := repos.NewMissionRepo()

  // Services
  log.Info("Setting up Services from main...")
  bucketService, err := services.NewBucketService(awsCfg, log)
  if err != nil {
    log.Error("Could not init BucketService", "error", err)
    os.Exit(1)
  }
  aiClient, err := services.NewAIClient(log)
  if err != nil {
    log.Error("Could not init AIClient", "error", err)
    os.Exit(1)
  }
  mediaService := services.NewMediaService(log, bucketService)
  contentService := services.NewContentService(log, contentRepo, mediaService)
  missionService := services.NewMissionService(log, missionRepo, submissionRepo, userRepo, aiClient)
  userService := services.NewUserService(log, userRepo, submissionRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  contentHandler := handlers.NewContentHandler(log, contentService)
  mediaHandler := handlers.NewMediaHandler(log, mediaService)
  missionHandler := handlers.NewMissionHandler(log, missionService)
  userHandler := handlers.NewUserHandler(log, userService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, sessionSecret)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AllowedOrigins: allowedOrigins,
    AuthMiddleware: authMiddleware,
    ContentHandler: contentHandler,
    MediaHandler:   mediaHandler,
    MissionHandler: missionHandler,
    UserHandler:    userHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
