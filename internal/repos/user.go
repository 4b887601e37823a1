package repos

import (
  "context"
  "errors"
  "fmt"

  "github.com/aws/aws-sdk-go-v2/aws"
  "github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
  "github.com/aws/aws-sdk-go-v2/service/dynamodb"
  ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

  "github.com/yungbote/studyai-backend/internal/db"
  "github.com/yungbote/studyai-backend/internal/logger"
  "github.com/yungbote/studyai-backend/internal/types"
)

type UserRepo interface {
  Get(ctx context.Context, userID string) (*types.User, error)
  Create(ctx context.Context, user *types.User) error
  // AppendCompletedMission appends missionID and sets the new level in a
  // single conditional update. Returns false when the mission was already
  // recorded (condition failed), which is not an error.
  AppendCompletedMission(ctx context.Context, userID, missionID string, level types.UserLevel) (bool, error)
}

type userRepo struct {
  client db.DynamoAPI
  table  string
  log    *logger.Logger
}

func NewUserRepo(client db.DynamoAPI, table string, baseLog *logger.Logger) UserRepo {
  repoLog := baseLog.With("repo", "UserRepo")
  return &userRepo{client: client, table: table, log: repoLog}
}

func (r *userRepo) Get(ctx context.Context, userID string) (*types.User, error) {
  out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
    TableName: aws.String(r.table),
    Key:       userKey(userID),
  })
  if err != nil {
    r.log.Error("GetItem failed on users table", "error", err, "user_id", userID)
    return nil, fmt.Errorf("Failed to fetch user: %w", err)
  }
  if out.Item == nil {
    return nil, nil
  }
  var user types.User
  if err := attributevalue.UnmarshalMap(out.Item, &user); err != nil {
    return nil, fmt.Errorf("Failed to fetch user: %w", err)
  }
  if user.CompletedMissions == nil {
    user.CompletedMissions = []string{}
  }
  return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *types.User) error {
  av, err := attributevalue.MarshalMap(user)
  if err != nil {
    return fmt.Errorf("Failed to create user: %w", err)
  }
  if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
    TableName: aws.String(r.table),
    Item:      av,
  }); err != nil {
    r.log.Error("PutItem failed on users table", "error", err, "user_id", user.UserID)
    return fmt.Errorf("Failed to create user: %w", err)
  }
  return nil
}

func (r *userRepo) AppendCompletedMission(ctx context.Context, userID, missionID string, level types.UserLevel) (bool, error) {
  _, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
    TableName: aws.String(r.table),
    Key:       userKey(userID),
    UpdateExpression: aws.String(
      "SET #level = :level, completedMissions = list_append(if_not_exists(completedMissions, :empty_list), :mission)",
    ),
    // the condition makes the append idempotent under concurrent submissions
    ConditionExpression: aws.String("NOT contains(completedMissions, :mission_id)"),
    ExpressionAttributeNames: map[string]string{
      "#level": "level",
    },
    ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
      ":level": &ddbtypes.AttributeValueMemberS{Value: string(level)},
      ":mission": &ddbtypes.AttributeValueMemberL{
        Value: []ddbtypes.AttributeValue{&ddbtypes.AttributeValueMemberS{Value: missionID}},
      },
      ":mission_id": &ddbtypes.AttributeValueMemberS{Value: missionID},
      ":empty_list": &ddbtypes.AttributeValueMemberL{Value: []ddbtypes.AttributeValue{}},
    },
  })
  if err != nil {
    var ccf *ddbtypes.ConditionalCheckFailedException
    if errors.As(err, &ccf) {
      r.log.Debug("Mission already recorded for user", "user_id", userID, "mission_id", missionID)
      return false, nil
    }
    r.log.Error("UpdateItem failed on users table", "error", err, "user_id", userID, "mission_id", missionID)
    return false, fmt.Errorf("Failed to update user progress: %w", err)
  }
  return true, nil
}

func userKey(userID string) map[string]ddbtypes.AttributeValue {
  return map[string]ddbtypes.AttributeValue{
    "userId": &ddbtypes.AttributeValueMemberS{Value: userID},
  }
}
