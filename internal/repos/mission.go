package repos

import (
  "github.com/yungbote/studyai-backend/internal/types"
)

// Missions are static and code-defined. An infra table exists for them but
// nothing reads it; the in-code list is the source of truth.
var defaultMissions = []types.Mission{
  {
    MissionID:   "mission_email",
    Title:       "Polite Email Refinement",
    Description: "Refine your emails to be professional and polite for your superiors.",
    PromptSystem: "You are a polite business assistant. Transform the user's rough input into a " +
      "professional and polite business email in English. Explain why you made the changes.",
    UIConfig: types.MissionUIConfig{
      InputPlaceholder: "Paste your rough email draft here...",
      Icon:             "📧",
    },
  },
  {
    MissionID:   "mission_meeting",
    Title:       "Meeting Minutes Summary",
    Description: "Summarize meeting notes focusing on decisions and action items.",
    PromptSystem: "You are a professional secretary. Summarize the meeting notes into " +
      "'Key Decisions' and 'Action Items' in English.",
    UIConfig: types.MissionUIConfig{
      InputPlaceholder: "Enter your meeting notes here...",
      Icon:             "📝",
    },
  },
  {
    MissionID:   "mission_report",
    Title:       "Report Draft Generation",
    Description: "Turn your idea memos into structured report drafts.",
    PromptSystem: "You are a strategic consultant. Transform the user's idea into a structured " +
      "report draft with 'Background', 'Problem', and 'Solution' sections in English.",
    UIConfig: types.MissionUIConfig{
      InputPlaceholder: "Enter your idea memo here...",
      Icon:             "📊",
    },
  },
}

type MissionRepo interface {
  List() []types.Mission
  Get(missionID string) (*types.Mission, bool)
}

type missionRepo struct {
  missions []types.Mission
}

func NewMissionRepo() MissionRepo {
  return &missionRepo{missions: defaultMissions}
}

func (r *missionRepo) List() []types.Mission {
  out := make([]types.Mission, len(r.missions))
  copy(out, r.missions)
  return out
}

func (r *missionRepo) Get(missionID string) (*types.Mission, bool) {
  for i := range r.missions {
    if r.missions[i].MissionID == missionID {
      m := r.missions[i]
      return &m, true
    }
  }
  return nil, false
}
