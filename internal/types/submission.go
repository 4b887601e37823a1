package types

// Submission is immutable once created.
type Submission struct {
  SubmissionID string `json:"submissionId" dynamodbav:"submissionId"`
  UserID       string `json:"userId" dynamodbav:"userId"`
  MissionID    string `json:"missionId" dynamodbav:"missionId"`
  InputText    string `json:"inputText" dynamodbav:"inputText"`
  OutputText   string `json:"outputText" dynamodbav:"outputText"`
  CreatedAt    string `json:"createdAt" dynamodbav:"createdAt"`
}
