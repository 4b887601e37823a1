package db

import (
  "context"
  "github.com/aws/aws-sdk-go-v2/aws"
  "github.com/aws/aws-sdk-go-v2/service/dynamodb"
  "github.com/yungbote/studyai-backend/internal/logger"
  "github.com/yungbote/studyai-backend/internal/utils"
)

// DynamoAPI is the subset of the DynamoDB client used by the repositories.
// *dynamodb.Client satisfies it; tests substitute fakes.
type DynamoAPI interface {
  Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
  Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
  GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
  PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
  UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
  DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Tables carries the per-entity table names. Table-per-entity design:
// Contents keyed by contentId, Users by userId, Submissions by submissionId
// with an AuthorIndex (userId, createdAt) for latest-first listing.
type Tables struct {
  Contents    string
  Users       string
  Submissions string
}

type DynamoService struct {
  client *dynamodb.Client
  tables Tables
  log    *logger.Logger
}

func NewDynamoService(cfg aws.Config, log *logger.Logger) *DynamoService {
  serviceLog := log.With("service", "DynamoService")
  tables := Tables{
    Contents:    utils.GetEnv("DYNAMO_CONTENTS_TABLE", "Contents", log),
    Users:       utils.GetEnv("DYNAMO_USERS_TABLE", "Users", log),
    Submissions: utils.GetEnv("DYNAMO_SUBMISSIONS_TABLE", "Submissions", log),
  }
  serviceLog.Info("DynamoDB client configured",
    "region", cfg.Region,
    "contents_table", tables.Contents,
    "users_table", tables.Users,
    "submissions_table", tables.Submissions,
  )
  return &DynamoService{
    client: dynamodb.NewFromConfig(cfg),
    tables: tables,
    log:    serviceLog,
  }
}

func (s *DynamoService) Client() DynamoAPI {
  return s.client
}

func (s *DynamoService) Tables() Tables {
  return s.tables
}
