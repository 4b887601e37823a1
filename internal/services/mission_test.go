package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/studyai-backend/internal/apierr"
	"github.com/yungbote/studyai-backend/internal/repos"
	"github.com/yungbote/studyai-backend/internal/types"
)

func newTestMissionService(t *testing.T, users *fakeUserRepo, subs *fakeSubmissionRepo, ai AIClient) MissionService {
	t.Helper()
	return NewMissionService(testLogger(t), repos.NewMissionRepo(), subs, users, ai)
}

func okAI(output string) *fakeAIClient {
	return &fakeAIClient{
		generateFn: func(_ context.Context, _, _ string) (*AIResponse, error) {
			return &AIResponse{OutputText: output}, nil
		},
	}
}

func TestSubmitHappyPath(t *testing.T) {
	users := newFakeUserRepo()
	users.users["u1"] = &types.User{
		UserID:            "u1",
		CompletedMissions: []string{},
		Level:             types.LevelBeginner,
	}
	subs := &fakeSubmissionRepo{}
	var gotSystem, gotInput string
	ai := &fakeAIClient{
		generateFn: func(_ context.Context, systemPrompt, userInput string) (*AIResponse, error) {
			gotSystem = systemPrompt
			gotInput = userInput
			return &AIResponse{OutputText: "Dear team, ..."}, nil
		},
	}
	ms := newTestMissionService(t, users, subs, ai)

	result, err := ms.Submit(context.Background(), "u1", "mission_email", "send the thing")
	require.NoError(t, err)
	require.Equal(t, "Dear team, ...", result.OutputText)
	require.Equal(t, "send the thing", gotInput)
	require.NotEmpty(t, gotSystem)

	require.Len(t, subs.created, 1)
	sub := subs.created[0]
	require.NotEmpty(t, sub.SubmissionID)
	require.Equal(t, "u1", sub.UserID)
	require.Equal(t, "mission_email", sub.MissionID)
	require.Equal(t, "send the thing", sub.InputText)
	require.Equal(t, "Dear team, ...", sub.OutputText)

	require.Equal(t, []string{"mission_email"}, users.users["u1"].CompletedMissions)
	require.Equal(t, types.LevelBeginner, users.users["u1"].Level)
}

func TestSubmitUnknownMission(t *testing.T) {
	ms := newTestMissionService(t, newFakeUserRepo(), &fakeSubmissionRepo{}, okAI("x"))

	_, err := ms.Submit(context.Background(), "u1", "mission_unknown", "hello")
	require.ErrorIs(t, err, ErrMissionNotFound)
}

func TestSubmitEmptyInput(t *testing.T) {
	ms := newTestMissionService(t, newFakeUserRepo(), &fakeSubmissionRepo{}, okAI("x"))

	_, err := ms.Submit(context.Background(), "u1", "mission_email", "")
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.Status)
}

// An AI failure leaves no trace: no submission record and no progress change.
func TestSubmitAIFailureRecordsNothing(t *testing.T) {
	users := newFakeUserRepo()
	users.users["u1"] = &types.User{UserID: "u1", CompletedMissions: []string{}}
	subs := &fakeSubmissionRepo{}
	ai := &fakeAIClient{
		generateFn: func(_ context.Context, _, _ string) (*AIResponse, error) {
			return nil, errors.New("Failed to generate AI response")
		},
	}
	ms := newTestMissionService(t, users, subs, ai)

	_, err := ms.Submit(context.Background(), "u1", "mission_email", "hello")
	require.Error(t, err)
	require.Empty(t, subs.created)
	require.Empty(t, users.users["u1"].CompletedMissions)
}

// A repeat submission still produces a submission record but does not touch
// the completed list or the level.
func TestSubmitRepeatKeepsProgress(t *testing.T) {
	users := newFakeUserRepo()
	users.users["u1"] = &types.User{
		UserID:            "u1",
		CompletedMissions: []string{"mission_email", "mission_meeting", "mission_report"},
		Level:             types.LevelIntermediate,
	}
	subs := &fakeSubmissionRepo{}
	ms := newTestMissionService(t, users, subs, okAI("again"))

	_, err := ms.Submit(context.Background(), "u1", "mission_email", "try again")
	require.NoError(t, err)
	require.Len(t, subs.created, 1)
	require.Len(t, users.users["u1"].CompletedMissions, 3)
	require.Equal(t, types.LevelIntermediate, users.users["u1"].Level)
}

func TestSubmitLevelDerivedFromCount(t *testing.T) {
	users := newFakeUserRepo()
	users.users["u1"] = &types.User{
		UserID:            "u1",
		CompletedMissions: []string{"mission_meeting", "mission_report"},
		Level:             types.LevelBeginner,
	}
	ms := newTestMissionService(t, users, &fakeSubmissionRepo{}, okAI("done"))

	_, err := ms.Submit(context.Background(), "u1", "mission_email", "third one")
	require.NoError(t, err)
	require.Equal(t, types.LevelIntermediate, users.users["u1"].Level)
}

func TestSubmitSurvivesAppendConditionRace(t *testing.T) {
	users := newFakeUserRepo()
	users.users["u1"] = &types.User{UserID: "u1", CompletedMissions: []string{}}
	users.appendFn = func(_ context.Context, _, _ string, _ types.UserLevel) (bool, error) {
		// concurrent submit recorded the mission first
		return false, nil
	}
	ms := newTestMissionService(t, users, &fakeSubmissionRepo{}, okAI("done"))

	result, err := ms.Submit(context.Background(), "u1", "mission_email", "hello")
	require.NoError(t, err)
	require.Equal(t, "done", result.OutputText)
}

func TestGetMission(t *testing.T) {
	ms := newTestMissionService(t, newFakeUserRepo(), &fakeSubmissionRepo{}, okAI("x"))

	mission, err := ms.Get(context.Background(), "mission_report")
	require.NoError(t, err)
	require.Equal(t, "mission_report", mission.MissionID)

	_, err = ms.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrMissionNotFound)
}
