package services

import (
  "context"
  "errors"
  "fmt"
  "time"

  "github.com/google/uuid"

  "github.com/yungbote/studyai-backend/internal/apierr"
  "github.com/yungbote/studyai-backend/internal/logger"
  "github.com/yungbote/studyai-backend/internal/repos"
  "github.com/yungbote/studyai-backend/internal/types"
)

const (
  MaxPageLimit      = 50
  fetchMaxRetries   = 3
  defaultFetchDelay = 1 * time.Second
)

// FetchParams carries the pagination contract: offset >= 0 and
// 1 <= limit <= 50, validated before any store access. Offset cannot be
// applied to a scan-style store; Cursor is the seekable alternative, built
// from a previous page's NextCursor.
type FetchParams struct {
  Offset int32
  Limit  int32
  Type   types.ContentType
  Cursor string
}

type ContentInput struct {
  Type     types.ContentType      `json:"type"`
  Title    string                 `json:"title"`
  Content  map[string]any         `json:"content"`
  Metadata *types.ContentMetadata `json:"metadata,omitempty"`
}

type DeleteWithMediaResult struct {
  DeletedKeys  []string `json:"deletedKeys,omitempty"`
  OrphanedKeys []string `json:"orphanedKeys,omitempty"`
}

type ContentService interface {
  Fetch(ctx context.Context, params FetchParams) (*repos.ContentPage, error)
  GetByID(ctx context.Context, contentID string) (*types.StudyContent, error)
  Create(ctx context.Context, authorID string, input ContentInput) (*types.StudyContent, error)
  Update(ctx context.Context, contentID string, input ContentInput) error
  Delete(ctx context.Context, contentID string) error
  DeleteWithMedia(ctx context.Context, contentID string, mediaKeys []string) (*DeleteWithMediaResult, error)
}

type contentService struct {
  log        *logger.Logger
  contents   repos.ContentRepo
  media      MediaService
  retryDelay time.Duration
}

func NewContentService(log *logger.Logger, contents repos.ContentRepo, media MediaService) ContentService {
  serviceLog := log.With("service", "ContentService")
  return &contentService{
    log:        serviceLog,
    contents:   contents,
    media:      media,
    retryDelay: defaultFetchDelay,
  }
}

func validateFetchParams(params FetchParams) error {
  if params.Offset < 0 || params.Limit <= 0 || params.Limit > MaxPageLimit {
    return apierr.BadRequest("Invalid pagination parameters")
  }
  if params.Type != "" && !params.Type.Valid() {
    return apierr.BadRequest("Invalid content type %q", params.Type)
  }
  return nil
}

// Fetch retries the whole page fetch with a doubling backoff; this is the
// only operation in the system with a retry policy.
func (cs *contentService) Fetch(ctx context.Context, params FetchParams) (*repos.ContentPage, error) {
  if err := validateFetchParams(params); err != nil {
    return nil, err
  }
  var lastErr error
  for attempt := 0; attempt <= fetchMaxRetries; attempt++ {
    if attempt > 0 {
      delay := cs.retryDelay * (1 << (attempt - 1))
      select {
      case <-time.After(delay):
      case <-ctx.Done():
        return nil, ctx.Err()
      }
    }
    var page *repos.ContentPage
    var err error
    if params.Type != "" {
      page, err = cs.contents.FetchPageByType(ctx, params.Type, params.Limit, params.Cursor)
    } else {
      page, err = cs.contents.FetchPage(ctx, params.Limit, params.Cursor)
    }
    if err == nil {
      return page, nil
    }
    var apiErr *apierr.Error
    if errors.As(err, &apiErr) {
      // caller error (bad cursor), retrying cannot help
      return nil, err
    }
    lastErr = err
    cs.log.Warn("Content fetch attempt failed", "attempt", attempt+1, "error", err)
  }
  return nil, fmt.Errorf("Failed to load study content: %w", lastErr)
}

func (cs *contentService) GetByID(ctx context.Context, contentID string) (*types.StudyContent, error) {
  if contentID == "" {
    return nil, apierr.BadRequest("content id is required")
  }
  return cs.contents.GetByID(ctx, contentID)
}

func validateContentInput(input ContentInput) error {
  if !input.Type.Valid() {
    return apierr.BadRequest("Invalid content type %q", input.Type)
  }
  if input.Title == "" {
    return apierr.BadRequest("title is required")
  }
  if !types.ValidateContent(input.Type, input.Content) {
    return apierr.BadRequest("content does not match declared type %q", input.Type)
  }
  return nil
}

func (cs *contentService) Create(ctx context.Context, authorID string, input ContentInput) (*types.StudyContent, error) {
  if err := validateContentInput(input); err != nil {
    return nil, err
  }
  content := &types.StudyContent{
    ID:        uuid.NewString(),
    Type:      input.Type,
    Title:     input.Title,
    Content:   input.Content,
    Metadata:  input.Metadata,
    AuthorID:  authorID,
    CreatedAt: time.Now().UTC().Format(time.RFC3339),
  }
  if err := cs.contents.Create(ctx, content); err != nil {
    return nil, err
  }
  cs.log.Info("Content created", "content_id", content.ID, "type", content.Type)
  return content, nil
}

func (cs *contentService) Update(ctx context.Context, contentID string, input ContentInput) error {
  if contentID == "" {
    return apierr.BadRequest("content id is required")
  }
  if err := validateContentInput(input); err != nil {
    return err
  }
  content := &types.StudyContent{
    ID:       contentID,
    Type:     input.Type,
    Title:    input.Title,
    Content:  input.Content,
    Metadata: input.Metadata,
  }
  return cs.contents.Update(ctx, contentID, content)
}

func (cs *contentService) Delete(ctx context.Context, contentID string) error {
  if contentID == "" {
    return apierr.BadRequest("content id is required")
  }
  return cs.contents.Delete(ctx, contentID)
}

// DeleteWithMedia is an explicit two-phase delete across two stores: the
// document row goes first, then each media object. There is no transaction
// spanning the stores; once the row is gone, object deletes that keep
// failing are reported as orphans instead of failing the operation.
func (cs *contentService) DeleteWithMedia(ctx context.Context, contentID string, mediaKeys []string) (*DeleteWithMediaResult, error) {
  if err := cs.Delete(ctx, contentID); err != nil {
    return nil, err
  }
  result := &DeleteWithMediaResult{}
  for _, key := range mediaKeys {
    var err error
    for attempt := 0; attempt < 2; attempt++ {
      if err = cs.media.Delete(ctx, key); err == nil {
        break
      }
    }
    if err != nil {
      cs.log.Warn("Media object orphaned after content delete", "content_id", contentID, "key", key, "error", err)
      result.OrphanedKeys = append(result.OrphanedKeys, key)
      continue
    }
    result.DeletedKeys = append(result.DeletedKeys, key)
  }
  return result, nil
}
