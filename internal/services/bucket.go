package services

import (
  "context"
  "fmt"
  "time"

  "github.com/aws/aws-sdk-go-v2/aws"
  v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
  "github.com/aws/aws-sdk-go-v2/service/s3"

  "github.com/yungbote/studyai-backend/internal/logger"
  "github.com/yungbote/studyai-backend/internal/utils"
)

type BucketService interface {
  PresignUpload(ctx context.Context, key, contentType string) (string, error)
  PresignDownload(ctx context.Context, key string) (string, error)
  DeleteFile(ctx context.Context, key string) error
  GetPublicURL(key string) string
}

// S3Presigner is the slice of the presign client the bucket service needs;
// *s3.PresignClient satisfies it.
type S3Presigner interface {
  PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
  PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type S3Deleter interface {
  DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type bucketService struct {
  log        *logger.Logger
  presigner  S3Presigner
  s3Client   S3Deleter
  bucketName string
  expiry     time.Duration
}

func NewBucketService(cfg aws.Config, log *logger.Logger) (BucketService, error) {
  serviceLog := log.With("service", "BucketService")
  bucket := utils.GetEnv("MEDIA_BUCKET_NAME", "", log)
  if bucket == "" {
    return nil, fmt.Errorf("missing env var MEDIA_BUCKET_NAME")
  }
  expirySec := utils.GetEnvAsInt("PRESIGN_EXPIRY_SECONDS", 3600, log)
  client := s3.NewFromConfig(cfg)
  return &bucketService{
    log:        serviceLog,
    presigner:  s3.NewPresignClient(client),
    s3Client:   client,
    bucketName: bucket,
    expiry:     time.Duration(expirySec) * time.Second,
  }, nil
}

// PresignUpload signs a PUT for key with the content type bound to the
// signature, so the uploader cannot swap the MIME type after validation.
func (bs *bucketService) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
  req, err := bs.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
    Bucket:      aws.String(bs.bucketName),
    Key:         aws.String(key),
    ContentType: aws.String(contentType),
  }, s3.WithPresignExpires(bs.expiry))
  if err != nil {
    return "", fmt.Errorf("Failed to generate presigned upload URL: %w", err)
  }
  return req.URL, nil
}

func (bs *bucketService) PresignDownload(ctx context.Context, key string) (string, error) {
  req, err := bs.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
    Bucket: aws.String(bs.bucketName),
    Key:    aws.String(key),
  }, s3.WithPresignExpires(bs.expiry))
  if err != nil {
    return "", fmt.Errorf("Failed to generate signed URL: %w", err)
  }
  return req.URL, nil
}

func (bs *bucketService) DeleteFile(ctx context.Context, key string) error {
  ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
  defer cancel()
  if _, err := bs.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
    Bucket: aws.String(bs.bucketName),
    Key:    aws.String(key),
  }); err != nil {
    return fmt.Errorf("Failed to delete media %q: %w", key, err)
  }
  return nil
}

func (bs *bucketService) GetPublicURL(key string) string {
  return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bs.bucketName, key)
}
