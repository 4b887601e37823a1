package services

import (
  "context"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"

  "github.com/yungbote/studyai-backend/internal/apierr"
  "github.com/yungbote/studyai-backend/internal/logger"
  "github.com/yungbote/studyai-backend/internal/types"
)

const MaxPresignBatchSize = 10

// allowedMediaTypes is the fixed MIME allow-list for presigned uploads.
var allowedMediaTypes = map[string]bool{
  "image/jpeg":      true,
  "image/png":       true,
  "image/gif":       true,
  "image/webp":      true,
  "video/mp4":       true,
  "video/webm":      true,
  "audio/mp3":       true,
  "audio/wav":       true,
  "application/pdf": true,
}

type UploadRequest struct {
  FileName    string `json:"fileName"`
  ContentType string `json:"contentType"`
}

type PresignedUpload struct {
  Key          string          `json:"key"`
  PresignedURL string          `json:"presignedUrl"`
  PublicURL    string          `json:"publicUrl"`
  FileName     string          `json:"fileName"`
  ContentType  string          `json:"contentType"`
  MediaType    types.MediaType `json:"mediaType"`
}

type MediaService interface {
  PresignUpload(ctx context.Context, req UploadRequest) (*PresignedUpload, error)
  PresignUploadBatch(ctx context.Context, reqs []UploadRequest) ([]PresignedUpload, error)
  PresignDownload(ctx context.Context, key string) (string, error)
  Delete(ctx context.Context, key string) error
}

type mediaService struct {
  log    *logger.Logger
  bucket BucketService
}

func NewMediaService(log *logger.Logger, bucket BucketService) MediaService {
  serviceLog := log.With("service", "MediaService")
  return &mediaService{log: serviceLog, bucket: bucket}
}

func validateUploadRequest(req UploadRequest) error {
  if req.FileName == "" || req.ContentType == "" {
    return apierr.BadRequest("fileName and contentType are required")
  }
  if !allowedMediaTypes[req.ContentType] {
    return apierr.BadRequest("File type %s not allowed", req.ContentType)
  }
  return nil
}

// mediaKey builds media/<ISO-date>/<uuid>.<ext>. The uuid makes the key
// globally unique without a collision check.
func mediaKey(fileName string) string {
  date := time.Now().UTC().Format("2006-01-02")
  id := uuid.NewString()
  if i := strings.LastIndex(fileName, "."); i >= 0 && i < len(fileName)-1 {
    return fmt.Sprintf("media/%s/%s.%s", date, id, fileName[i+1:])
  }
  return fmt.Sprintf("media/%s/%s", date, id)
}

func (ms *mediaService) PresignUpload(ctx context.Context, req UploadRequest) (*PresignedUpload, error) {
  if err := validateUploadRequest(req); err != nil {
    return nil, err
  }
  key := mediaKey(req.FileName)
  url, err := ms.bucket.PresignUpload(ctx, key, req.ContentType)
  if err != nil {
    ms.log.Error("Presign upload failed", "error", err, "key", key)
    return nil, fmt.Errorf("Failed to generate presigned URL")
  }
  return &PresignedUpload{
    Key:          key,
    PresignedURL: url,
    PublicURL:    ms.bucket.GetPublicURL(key),
    FileName:     req.FileName,
    ContentType:  req.ContentType,
    MediaType:    types.MediaTypeForContentType(req.ContentType),
  }, nil
}

// PresignUploadBatch validates the whole batch up front, then signs each file
// concurrently. Every upload writes a distinct key, so the fan-out shares no
// mutable state. Output order matches input order.
func (ms *mediaService) PresignUploadBatch(ctx context.Context, reqs []UploadRequest) ([]PresignedUpload, error) {
  if len(reqs) == 0 {
    return nil, apierr.BadRequest("files array is required")
  }
  if len(reqs) > MaxPresignBatchSize {
    return nil, apierr.BadRequest("Maximum %d files allowed per request", MaxPresignBatchSize)
  }
  for _, req := range reqs {
    if err := validateUploadRequest(req); err != nil {
      return nil, err
    }
  }
  results := make([]PresignedUpload, len(reqs))
  g, gctx := errgroup.WithContext(ctx)
  for i, req := range reqs {
    g.Go(func() error {
      out, err := ms.PresignUpload(gctx, req)
      if err != nil {
        return err
      }
      results[i] = *out
      return nil
    })
  }
  if err := g.Wait(); err != nil {
    ms.log.Error("Batch presign failed", "error", err, "count", len(reqs))
    return nil, fmt.Errorf("Failed to generate presigned URLs")
  }
  return results, nil
}

func (ms *mediaService) PresignDownload(ctx context.Context, key string) (string, error) {
  if key == "" {
    return "", apierr.BadRequest("key is required")
  }
  url, err := ms.bucket.PresignDownload(ctx, key)
  if err != nil {
    ms.log.Error("Presign download failed", "error", err, "key", key)
    return "", fmt.Errorf("Failed to generate signed URL")
  }
  return url, nil
}

func (ms *mediaService) Delete(ctx context.Context, key string) error {
  if key == "" {
    return apierr.BadRequest("key is required")
  }
  if err := ms.bucket.DeleteFile(ctx, key); err != nil {
    ms.log.Error("Media delete failed", "error", err, "key", key)
    return fmt.Errorf("Failed to delete media")
  }
  return nil
}
