package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/studyai-backend/internal/logger"
	"github.com/yungbote/studyai-backend/internal/repos"
	"github.com/yungbote/studyai-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	require.NoError(t, err)
	return log
}

type fakeContentRepo struct {
	fetchPageFn       func(ctx context.Context, limit int32, cursor string) (*repos.ContentPage, error)
	fetchPageByTypeFn func(ctx context.Context, contentType types.ContentType, limit int32, cursor string) (*repos.ContentPage, error)
	getByIDFn         func(ctx context.Context, contentID string) (*types.StudyContent, error)
	createFn          func(ctx context.Context, content *types.StudyContent) error
	updateFn          func(ctx context.Context, contentID string, content *types.StudyContent) error
	deleteFn          func(ctx context.Context, contentID string) error

	fetchCalls int
}

func (f *fakeContentRepo) FetchPage(ctx context.Context, limit int32, cursor string) (*repos.ContentPage, error) {
	f.fetchCalls++
	return f.fetchPageFn(ctx, limit, cursor)
}

func (f *fakeContentRepo) FetchPageByType(ctx context.Context, contentType types.ContentType, limit int32, cursor string) (*repos.ContentPage, error) {
	f.fetchCalls++
	return f.fetchPageByTypeFn(ctx, contentType, limit, cursor)
}

func (f *fakeContentRepo) GetByID(ctx context.Context, contentID string) (*types.StudyContent, error) {
	return f.getByIDFn(ctx, contentID)
}

func (f *fakeContentRepo) Create(ctx context.Context, content *types.StudyContent) error {
	return f.createFn(ctx, content)
}

func (f *fakeContentRepo) Update(ctx context.Context, contentID string, content *types.StudyContent) error {
	return f.updateFn(ctx, contentID, content)
}

func (f *fakeContentRepo) Delete(ctx context.Context, contentID string) error {
	return f.deleteFn(ctx, contentID)
}

type fakeUserRepo struct {
	users    map[string]*types.User
	appendFn func(ctx context.Context, userID, missionID string, level types.UserLevel) (bool, error)
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*types.User{}}
}

func (f *fakeUserRepo) Get(ctx context.Context, userID string) (*types.User, error) {
	return f.users[userID], nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *types.User) error {
	f.users[user.UserID] = user
	return nil
}

func (f *fakeUserRepo) AppendCompletedMission(ctx context.Context, userID, missionID string, level types.UserLevel) (bool, error) {
	if f.appendFn != nil {
		return f.appendFn(ctx, userID, missionID, level)
	}
	user, ok := f.users[userID]
	if !ok {
		return false, nil
	}
	for _, id := range user.CompletedMissions {
		if id == missionID {
			return false, nil
		}
	}
	user.CompletedMissions = append(user.CompletedMissions, missionID)
	user.Level = level
	return true, nil
}

type fakeSubmissionRepo struct {
	created []*types.Submission
	listFn  func(ctx context.Context, userID string) ([]*types.Submission, error)
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, submission *types.Submission) error {
	f.created = append(f.created, submission)
	return nil
}

func (f *fakeSubmissionRepo) ListByUser(ctx context.Context, userID string) ([]*types.Submission, error) {
	if f.listFn != nil {
		return f.listFn(ctx, userID)
	}
	out := []*types.Submission{}
	for _, s := range f.created {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeAIClient struct {
	generateFn func(ctx context.Context, systemPrompt, userInput string) (*AIResponse, error)
}

func (f *fakeAIClient) GenerateMissionOutput(ctx context.Context, systemPrompt, userInput string) (*AIResponse, error) {
	return f.generateFn(ctx, systemPrompt, userInput)
}

type fakeBucket struct {
	presignUploadFn   func(ctx context.Context, key, contentType string) (string, error)
	presignDownloadFn func(ctx context.Context, key string) (string, error)
	deleteFn          func(ctx context.Context, key string) error
}

func (f *fakeBucket) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	if f.presignUploadFn != nil {
		return f.presignUploadFn(ctx, key, contentType)
	}
	return "https://bucket.example/" + key + "?sig=put", nil
}

func (f *fakeBucket) PresignDownload(ctx context.Context, key string) (string, error) {
	if f.presignDownloadFn != nil {
		return f.presignDownloadFn(ctx, key)
	}
	return "https://bucket.example/" + key + "?sig=get", nil
}

func (f *fakeBucket) DeleteFile(ctx context.Context, key string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, key)
	}
	return nil
}

func (f *fakeBucket) GetPublicURL(key string) string {
	return "https://bucket.example/" + key
}
