package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/studyai-backend/internal/apierr"
	"github.com/yungbote/studyai-backend/internal/repos"
	"github.com/yungbote/studyai-backend/internal/requestdata"
	"github.com/yungbote/studyai-backend/internal/services"
	"github.com/yungbote/studyai-backend/internal/types"
)

type fakeContentService struct {
	fetchFn           func(ctx context.Context, params services.FetchParams) (*repos.ContentPage, error)
	getByIDFn         func(ctx context.Context, contentID string) (*types.StudyContent, error)
	createFn          func(ctx context.Context, authorID string, input services.ContentInput) (*types.StudyContent, error)
	updateFn          func(ctx context.Context, contentID string, input services.ContentInput) error
	deleteFn          func(ctx context.Context, contentID string) error
	deleteWithMediaFn func(ctx context.Context, contentID string, mediaKeys []string) (*services.DeleteWithMediaResult, error)
}

func (f *fakeContentService) Fetch(ctx context.Context, params services.FetchParams) (*repos.ContentPage, error) {
	return f.fetchFn(ctx, params)
}

func (f *fakeContentService) GetByID(ctx context.Context, contentID string) (*types.StudyContent, error) {
	return f.getByIDFn(ctx, contentID)
}

func (f *fakeContentService) Create(ctx context.Context, authorID string, input services.ContentInput) (*types.StudyContent, error) {
	return f.createFn(ctx, authorID, input)
}

func (f *fakeContentService) Update(ctx context.Context, contentID string, input services.ContentInput) error {
	return f.updateFn(ctx, contentID, input)
}

func (f *fakeContentService) Delete(ctx context.Context, contentID string) error {
	return f.deleteFn(ctx, contentID)
}

func (f *fakeContentService) DeleteWithMedia(ctx context.Context, contentID string, mediaKeys []string) (*services.DeleteWithMediaResult, error) {
	return f.deleteWithMediaFn(ctx, contentID, mediaKeys)
}

// identityMiddleware stands in for RequireAuth in handler tests.
func identityMiddleware(userID, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{UserID: userID, Email: email})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func newContentRouter(t *testing.T, svc services.ContentService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewContentHandler(testLogger(t), svc)
	r := gin.New()
	r.GET("/api/contents", h.ListContents)
	r.GET("/api/contents/:id", h.GetContent)
	r.POST("/api/contents", identityMiddleware("u1", "u1@example.com"), h.CreateContent)
	r.DELETE("/api/contents/:id", h.DeleteContent)
	return r
}

func TestListContentsPassesQueryParams(t *testing.T) {
	var gotParams services.FetchParams
	svc := &fakeContentService{
		fetchFn: func(_ context.Context, params services.FetchParams) (*repos.ContentPage, error) {
			gotParams = params
			return &repos.ContentPage{Contents: []*types.StudyContent{}, HasMore: false}, nil
		},
	}
	r := newContentRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/contents?offset=5&limit=20&type=quiz&cursor=abc", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int32(5), gotParams.Offset)
	require.Equal(t, int32(20), gotParams.Limit)
	require.Equal(t, types.ContentTypeQuiz, gotParams.Type)
	require.Equal(t, "abc", gotParams.Cursor)
}

func TestListContentsTypeAllMeansUnfiltered(t *testing.T) {
	var gotParams services.FetchParams
	svc := &fakeContentService{
		fetchFn: func(_ context.Context, params services.FetchParams) (*repos.ContentPage, error) {
			gotParams = params
			return &repos.ContentPage{}, nil
		},
	}
	r := newContentRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/contents?type=all", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, gotParams.Type)
}

func TestListContentsServiceValidationSurfaces(t *testing.T) {
	svc := &fakeContentService{
		fetchFn: func(_ context.Context, _ services.FetchParams) (*repos.ContentPage, error) {
			return nil, apierr.BadRequest("Invalid pagination parameters")
		},
	}
	r := newContentRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/contents?limit=999", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "Invalid pagination parameters", envelope.Error.Message)
}

func TestListContentsUpstreamErrorIsGeneric(t *testing.T) {
	svc := &fakeContentService{
		fetchFn: func(_ context.Context, _ services.FetchParams) (*repos.ContentPage, error) {
			return nil, context.DeadlineExceeded
		},
	}
	r := newContentRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/contents", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "Failed to fetch study content", envelope.Error.Message)
}

func TestGetContentNotFound(t *testing.T) {
	svc := &fakeContentService{
		getByIDFn: func(_ context.Context, _ string) (*types.StudyContent, error) {
			return nil, nil
		},
	}
	r := newContentRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/contents/nope", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "content_not_found", envelope.Error.Code)
}

func TestCreateContentUsesSessionAuthor(t *testing.T) {
	var gotAuthor string
	svc := &fakeContentService{
		createFn: func(_ context.Context, authorID string, input services.ContentInput) (*types.StudyContent, error) {
			gotAuthor = authorID
			return &types.StudyContent{ID: "c1", Type: input.Type, Title: input.Title, AuthorID: authorID}, nil
		},
	}
	r := newContentRouter(t, svc)

	body := `{"type": "summary", "title": "Recap", "content": {"summary": "short"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contents", strings.NewReader(body))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "u1", gotAuthor)
}

func TestDeleteContentWithMediaKeys(t *testing.T) {
	var gotKeys []string
	svc := &fakeContentService{
		deleteWithMediaFn: func(_ context.Context, _ string, mediaKeys []string) (*services.DeleteWithMediaResult, error) {
			gotKeys = mediaKeys
			return &services.DeleteWithMediaResult{
				DeletedKeys:  mediaKeys[:1],
				OrphanedKeys: mediaKeys[1:],
			}, nil
		},
	}
	r := newContentRouter(t, svc)

	body := `{"mediaKeys": ["media/2026-01-01/a.png", "media/2026-01-01/b.png"]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/contents/c1", strings.NewReader(body))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, gotKeys, 2)
	var out struct {
		Success bool `json:"success"`
		Media   struct {
			OrphanedKeys []string `json:"orphanedKeys"`
		} `json:"media"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.True(t, out.Success)
	require.Equal(t, []string{"media/2026-01-01/b.png"}, out.Media.OrphanedKeys)
}

func TestDeleteContentWithoutBody(t *testing.T) {
	deleted := ""
	svc := &fakeContentService{
		deleteFn: func(_ context.Context, contentID string) error {
			deleted = contentID
			return nil
		},
	}
	r := newContentRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/contents/c1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "c1", deleted)
}
