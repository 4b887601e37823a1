package types

type UserLevel string

const (
  LevelBeginner     UserLevel = "Beginner"
  LevelIntermediate UserLevel = "Intermediate"
  LevelAdvanced     UserLevel = "Advanced"
)

// User mirrors the Users table item. CompletedMissions is append-only; Level
// is derived from its length and never computed any other way.
type User struct {
  UserID            string    `json:"userId" dynamodbav:"userId"`
  Email             string    `json:"email" dynamodbav:"email"`
  CompletedMissions []string  `json:"completedMissions" dynamodbav:"completedMissions"`
  Level             UserLevel `json:"level" dynamodbav:"level"`
  CreatedAt         string    `json:"createdAt" dynamodbav:"createdAt"`
}

// LevelForCount maps the number of completed missions to a user level.
func LevelForCount(completed int) UserLevel {
  switch {
  case completed >= 6:
    return LevelAdvanced
  case completed >= 3:
    return LevelIntermediate
  default:
    return LevelBeginner
  }
}
