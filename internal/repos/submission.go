package repos

import (
  "context"
  "fmt"

  "github.com/aws/aws-sdk-go-v2/aws"
  "github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
  "github.com/aws/aws-sdk-go-v2/service/dynamodb"
  ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

  "github.com/yungbote/studyai-backend/internal/db"
  "github.com/yungbote/studyai-backend/internal/logger"
  "github.com/yungbote/studyai-backend/internal/types"
)

type SubmissionRepo interface {
  Create(ctx context.Context, submission *types.Submission) error
  ListByUser(ctx context.Context, userID string) ([]*types.Submission, error)
}

type submissionRepo struct {
  client db.DynamoAPI
  table  string
  log    *logger.Logger
}

func NewSubmissionRepo(client db.DynamoAPI, table string, baseLog *logger.Logger) SubmissionRepo {
  repoLog := baseLog.With("repo", "SubmissionRepo")
  return &submissionRepo{client: client, table: table, log: repoLog}
}

func (r *submissionRepo) Create(ctx context.Context, submission *types.Submission) error {
  av, err := attributevalue.MarshalMap(submission)
  if err != nil {
    return fmt.Errorf("Failed to create submission: %w", err)
  }
  if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
    TableName: aws.String(r.table),
    Item:      av,
  }); err != nil {
    r.log.Error("PutItem failed on submissions table", "error", err, "submission_id", submission.SubmissionID)
    return fmt.Errorf("Failed to create submission: %w", err)
  }
  return nil
}

// ListByUser queries the AuthorIndex (userId hash, createdAt range) with the
// range scanned backwards so the newest submission comes first.
func (r *submissionRepo) ListByUser(ctx context.Context, userID string) ([]*types.Submission, error) {
  out, err := r.client.Query(ctx, &dynamodb.QueryInput{
    TableName:              aws.String(r.table),
    IndexName:              aws.String("AuthorIndex"),
    KeyConditionExpression: aws.String("userId = :userId"),
    ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
      ":userId": &ddbtypes.AttributeValueMemberS{Value: userID},
    },
    ScanIndexForward: aws.Bool(false),
  })
  if err != nil {
    r.log.Error("Query failed on submissions table", "error", err, "user_id", userID)
    return nil, fmt.Errorf("Failed to list submissions: %w", err)
  }
  var submissions []*types.Submission
  if err := attributevalue.UnmarshalListOfMaps(out.Items, &submissions); err != nil {
    return nil, fmt.Errorf("Failed to list submissions: %w", err)
  }
  return submissions, nil
}
