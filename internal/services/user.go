package services

import (
  "context"
  "time"

  "github.com/yungbote/studyai-backend/internal/apierr"
  "github.com/yungbote/studyai-backend/internal/logger"
  "github.com/yungbote/studyai-backend/internal/repos"
  "github.com/yungbote/studyai-backend/internal/types"
)

type UserService interface {
  // GetOrCreate returns the stored user, creating a fresh Beginner record
  // on first sight of a session identity.
  GetOrCreate(ctx context.Context, userID, email string) (*types.User, error)
  ListSubmissions(ctx context.Context, userID string) ([]*types.Submission, error)
}

type userService struct {
  log         *logger.Logger
  users       repos.UserRepo
  submissions repos.SubmissionRepo
}

func NewUserService(log *logger.Logger, users repos.UserRepo, submissions repos.SubmissionRepo) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{log: serviceLog, users: users, submissions: submissions}
}

func (us *userService) GetOrCreate(ctx context.Context, userID, email string) (*types.User, error) {
  if userID == "" || email == "" {
    return nil, apierr.BadRequest("user id and email are required")
  }
  user, err := us.users.Get(ctx, userID)
  if err != nil {
    return nil, err
  }
  if user != nil {
    return user, nil
  }
  user = &types.User{
    UserID:            userID,
    Email:             email,
    CompletedMissions: []string{},
    Level:             types.LevelBeginner,
    CreatedAt:         time.Now().UTC().Format(time.RFC3339),
  }
  if err := us.users.Create(ctx, user); err != nil {
    return nil, err
  }
  us.log.Info("User record created", "user_id", userID)
  return user, nil
}

func (us *userService) ListSubmissions(ctx context.Context, userID string) ([]*types.Submission, error) {
  if userID == "" {
    return nil, apierr.BadRequest("user id is required")
  }
  return us.submissions.ListByUser(ctx, userID)
}
