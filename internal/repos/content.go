package repos

import (
  "context"
  "encoding/base64"
  "fmt"

  "github.com/aws/aws-sdk-go-v2/aws"
  "github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
  "github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
  "github.com/aws/aws-sdk-go-v2/service/dynamodb"
  ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

  "github.com/yungbote/studyai-backend/internal/apierr"
  "github.com/yungbote/studyai-backend/internal/db"
  "github.com/yungbote/studyai-backend/internal/logger"
  "github.com/yungbote/studyai-backend/internal/types"
)

// ContentPage is one window of the infinite-scroll feed. NextCursor resumes
// the scan after the last returned item; it is only set when HasMore.
type ContentPage struct {
  Contents   []*types.StudyContent `json:"contents"`
  HasMore    bool                  `json:"hasMore"`
  Total      int32                 `json:"total,omitempty"`
  NextCursor string                `json:"nextCursor,omitempty"`
}

type ContentRepo interface {
  FetchPage(ctx context.Context, limit int32, cursor string) (*ContentPage, error)
  FetchPageByType(ctx context.Context, contentType types.ContentType, limit int32, cursor string) (*ContentPage, error)
  GetByID(ctx context.Context, contentID string) (*types.StudyContent, error)
  Create(ctx context.Context, content *types.StudyContent) error
  Update(ctx context.Context, contentID string, content *types.StudyContent) error
  Delete(ctx context.Context, contentID string) error
}

type contentRepo struct {
  client db.DynamoAPI
  table  string
  log    *logger.Logger
}

func NewContentRepo(client db.DynamoAPI, table string, baseLog *logger.Logger) ContentRepo {
  repoLog := baseLog.With("repo", "ContentRepo")
  return &contentRepo{client: client, table: table, log: repoLog}
}

// contentItem is the storage shape of a content row. Difficulty, subject and
// tags live flat on the item so the table's secondary indexes can range over
// them; the nested content map is the tagged union payload.
type contentItem struct {
  ContentID  string                  `dynamodbav:"contentId"`
  Type       string                  `dynamodbav:"type"`
  Title      string                  `dynamodbav:"title"`
  Content    map[string]any          `dynamodbav:"content"`
  Difficulty string                  `dynamodbav:"difficulty,omitempty"`
  Subject    string                  `dynamodbav:"subject,omitempty"`
  Tags       []string                `dynamodbav:"tags,omitempty"`
  Media      []types.MediaAttachment `dynamodbav:"media,omitempty"`
  AuthorID   string                  `dynamodbav:"authorId,omitempty"`
  CreatedAt  string                  `dynamodbav:"createdAt,omitempty"`
}

func (r *contentRepo) FetchPage(ctx context.Context, limit int32, cursor string) (*ContentPage, error) {
  input := &dynamodb.ScanInput{
    TableName: aws.String(r.table),
    // one extra row tells us whether another page exists
    Limit: aws.Int32(limit + 1),
  }
  if cursor != "" {
    startKey, err := decodeCursor(cursor)
    if err != nil {
      return nil, err
    }
    input.ExclusiveStartKey = startKey
  }
  out, err := r.client.Scan(ctx, input)
  if err != nil {
    r.log.Error("Scan failed on contents table", "error", err)
    return nil, fmt.Errorf("Failed to fetch study content: %w", err)
  }
  return r.buildPage(out.Items, limit, out.Count)
}

func (r *contentRepo) FetchPageByType(ctx context.Context, contentType types.ContentType, limit int32, cursor string) (*ContentPage, error) {
  filter := expression.Name("type").Equal(expression.Value(string(contentType)))
  expr, err := expression.NewBuilder().WithFilter(filter).Build()
  if err != nil {
    return nil, fmt.Errorf("Failed to build type filter: %w", err)
  }
  input := &dynamodb.ScanInput{
    TableName:                 aws.String(r.table),
    Limit:                     aws.Int32(limit + 1),
    FilterExpression:          expr.Filter(),
    ExpressionAttributeNames:  expr.Names(),
    ExpressionAttributeValues: expr.Values(),
  }
  if cursor != "" {
    startKey, err := decodeCursor(cursor)
    if err != nil {
      return nil, err
    }
    input.ExclusiveStartKey = startKey
  }
  out, err := r.client.Scan(ctx, input)
  if err != nil {
    r.log.Error("Filtered scan failed on contents table", "error", err, "type", contentType)
    return nil, fmt.Errorf("Failed to fetch %s content: %w", contentType, err)
  }
  return r.buildPage(out.Items, limit, out.Count)
}

func (r *contentRepo) buildPage(raw []map[string]ddbtypes.AttributeValue, limit int32, count int32) (*ContentPage, error) {
  var items []contentItem
  if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
    r.log.Error("Failed to unmarshal content items", "error", err)
    return nil, fmt.Errorf("Failed to fetch study content: %w", err)
  }
  hasMore := int32(len(items)) > limit
  if hasMore {
    items = items[:limit]
  }
  contents := make([]*types.StudyContent, 0, len(items))
  for i := range items {
    contents = append(contents, toStudyContent(&items[i]))
  }
  page := &ContentPage{
    Contents: contents,
    HasMore:  hasMore,
    Total:    count,
  }
  if hasMore && len(contents) > 0 {
    page.NextCursor = encodeCursor(contents[len(contents)-1].ID)
  }
  return page, nil
}

func (r *contentRepo) GetByID(ctx context.Context, contentID string) (*types.StudyContent, error) {
  out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
    TableName: aws.String(r.table),
    Key:       contentKey(contentID),
  })
  if err != nil {
    r.log.Error("GetItem failed on contents table", "error", err, "content_id", contentID)
    return nil, fmt.Errorf("Failed to fetch study content: %w", err)
  }
  if out.Item == nil {
    return nil, nil
  }
  var item contentItem
  if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
    return nil, fmt.Errorf("Failed to fetch study content: %w", err)
  }
  return toStudyContent(&item), nil
}

func (r *contentRepo) Create(ctx context.Context, content *types.StudyContent) error {
  av, err := attributevalue.MarshalMap(fromStudyContent(content))
  if err != nil {
    return fmt.Errorf("Failed to create content: %w", err)
  }
  if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
    TableName: aws.String(r.table),
    Item:      av,
  }); err != nil {
    r.log.Error("PutItem failed on contents table", "error", err, "content_id", content.ID)
    return fmt.Errorf("Failed to create content: %w", err)
  }
  return nil
}

// Update overwrites the mutable fields of an existing row. AuthorID and
// CreatedAt are not touched.
func (r *contentRepo) Update(ctx context.Context, contentID string, content *types.StudyContent) error {
  item := fromStudyContent(content)
  update := expression.
    Set(expression.Name("type"), expression.Value(item.Type)).
    Set(expression.Name("title"), expression.Value(item.Title)).
    Set(expression.Name("content"), expression.Value(item.Content)).
    Set(expression.Name("difficulty"), expression.Value(item.Difficulty)).
    Set(expression.Name("subject"), expression.Value(item.Subject)).
    Set(expression.Name("tags"), expression.Value(item.Tags)).
    Set(expression.Name("media"), expression.Value(item.Media))
  expr, err := expression.NewBuilder().WithUpdate(update).Build()
  if err != nil {
    return fmt.Errorf("Failed to update content: %w", err)
  }
  if _, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
    TableName:                 aws.String(r.table),
    Key:                       contentKey(contentID),
    UpdateExpression:          expr.Update(),
    ExpressionAttributeNames:  expr.Names(),
    ExpressionAttributeValues: expr.Values(),
  }); err != nil {
    r.log.Error("UpdateItem failed on contents table", "error", err, "content_id", contentID)
    return fmt.Errorf("Failed to update content: %w", err)
  }
  return nil
}

// Delete is unconditional; deleting an absent key is a no-op at the store.
func (r *contentRepo) Delete(ctx context.Context, contentID string) error {
  if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
    TableName: aws.String(r.table),
    Key:       contentKey(contentID),
  }); err != nil {
    r.log.Error("DeleteItem failed on contents table", "error", err, "content_id", contentID)
    return fmt.Errorf("Failed to delete content: %w", err)
  }
  return nil
}

func contentKey(contentID string) map[string]ddbtypes.AttributeValue {
  return map[string]ddbtypes.AttributeValue{
    "contentId": &ddbtypes.AttributeValueMemberS{Value: contentID},
  }
}

func encodeCursor(contentID string) string {
  return base64.RawURLEncoding.EncodeToString([]byte(contentID))
}

func decodeCursor(cursor string) (map[string]ddbtypes.AttributeValue, error) {
  raw, err := base64.RawURLEncoding.DecodeString(cursor)
  if err != nil || len(raw) == 0 {
    return nil, apierr.BadRequest("Invalid pagination cursor")
  }
  return contentKey(string(raw)), nil
}

func toStudyContent(item *contentItem) *types.StudyContent {
  title := item.Title
  if title == "" {
    title = "Untitled"
  }
  tags := item.Tags
  if tags == nil {
    tags = []string{}
  }
  return &types.StudyContent{
    ID:      item.ContentID,
    Type:    types.ContentType(item.Type),
    Title:   title,
    Content: item.Content,
    Metadata: &types.ContentMetadata{
      Difficulty: types.DifficultyLevel(item.Difficulty),
      Subject:    item.Subject,
      Tags:       tags,
      Media:      item.Media,
    },
    AuthorID:  item.AuthorID,
    CreatedAt: item.CreatedAt,
  }
}

func fromStudyContent(content *types.StudyContent) *contentItem {
  item := &contentItem{
    ContentID: content.ID,
    Type:      string(content.Type),
    Title:     content.Title,
    Content:   content.Content,
    AuthorID:  content.AuthorID,
    CreatedAt: content.CreatedAt,
  }
  if content.Metadata != nil {
    item.Difficulty = string(content.Metadata.Difficulty)
    item.Subject = content.Metadata.Subject
    item.Tags = content.Metadata.Tags
    item.Media = content.Metadata.Media
  }
  return item
}
