package services

import (
  "context"
  "time"

  "github.com/google/uuid"

  "github.com/yungbote/studyai-backend/internal/apierr"
  "github.com/yungbote/studyai-backend/internal/logger"
  "github.com/yungbote/studyai-backend/internal/repos"
  "github.com/yungbote/studyai-backend/internal/types"
)

var ErrMissionNotFound = apierr.NotFound("mission_not_found", "Mission not found")

type SubmitResult struct {
  OutputText string `json:"outputText"`
}

type MissionService interface {
  List(ctx context.Context) []types.Mission
  Get(ctx context.Context, missionID string) (*types.Mission, error)
  Submit(ctx context.Context, userID, missionID, inputText string) (*SubmitResult, error)
}

type missionService struct {
  log         *logger.Logger
  missions    repos.MissionRepo
  submissions repos.SubmissionRepo
  users       repos.UserRepo
  ai          AIClient
}

func NewMissionService(log *logger.Logger, missions repos.MissionRepo, submissions repos.SubmissionRepo, users repos.UserRepo, ai AIClient) MissionService {
  serviceLog := log.With("service", "MissionService")
  return &missionService{
    log:         serviceLog,
    missions:    missions,
    submissions: submissions,
    users:       users,
    ai:          ai,
  }
}

func (ms *missionService) List(ctx context.Context) []types.Mission {
  return ms.missions.List()
}

func (ms *missionService) Get(ctx context.Context, missionID string) (*types.Mission, error) {
  mission, ok := ms.missions.Get(missionID)
  if !ok {
    return nil, ErrMissionNotFound
  }
  return mission, nil
}

// Submit runs the mission flow: static mission lookup, AI passthrough with
// the mission's fixed system prompt, submission record, then a conditional
// progress append. The store-level condition keeps a repeat submission from
// duplicating the mission id or bumping the level twice.
func (ms *missionService) Submit(ctx context.Context, userID, missionID, inputText string) (*SubmitResult, error) {
  if inputText == "" {
    return nil, apierr.BadRequest("inputText is required")
  }
  mission, ok := ms.missions.Get(missionID)
  if !ok {
    return nil, ErrMissionNotFound
  }

  aiResp, err := ms.ai.GenerateMissionOutput(ctx, mission.PromptSystem, inputText)
  if err != nil {
    return nil, err
  }

  submission := &types.Submission{
    SubmissionID: uuid.NewString(),
    UserID:       userID,
    MissionID:    missionID,
    InputText:    inputText,
    OutputText:   aiResp.OutputText,
    CreatedAt:    time.Now().UTC().Format(time.RFC3339),
  }
  if err := ms.submissions.Create(ctx, submission); err != nil {
    return nil, err
  }

  user, err := ms.users.Get(ctx, userID)
  if err != nil {
    return nil, err
  }
  if user != nil && !containsMission(user.CompletedMissions, missionID) {
    newLevel := types.LevelForCount(len(user.CompletedMissions) + 1)
    appended, err := ms.users.AppendCompletedMission(ctx, userID, missionID, newLevel)
    if err != nil {
      return nil, err
    }
    if !appended {
      ms.log.Debug("Progress append lost the condition race", "user_id", userID, "mission_id", missionID)
    }
  }

  return &SubmitResult{OutputText: aiResp.OutputText}, nil
}

func containsMission(completed []string, missionID string) bool {
  for _, id := range completed {
    if id == missionID {
      return true
    }
  }
  return false
}
