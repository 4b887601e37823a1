package types

type ContentType string

const (
  ContentTypeFlashcard ContentType = "flashcard"
  ContentTypeQuiz      ContentType = "quiz"
  ContentTypeLesson    ContentType = "lesson"
  ContentTypeSummary   ContentType = "summary"
)

func (t ContentType) Valid() bool {
  switch t {
  case ContentTypeFlashcard, ContentTypeQuiz, ContentTypeLesson, ContentTypeSummary:
    return true
  }
  return false
}

type DifficultyLevel string

const (
  DifficultyEasy   DifficultyLevel = "easy"
  DifficultyMedium DifficultyLevel = "medium"
  DifficultyHard   DifficultyLevel = "hard"
)

type ContentMetadata struct {
  Difficulty DifficultyLevel   `json:"difficulty,omitempty"`
  Subject    string            `json:"subject,omitempty"`
  Tags       []string          `json:"tags,omitempty"`
  Media      []MediaAttachment `json:"media,omitempty"`
}

// StudyContent is the unit served by the infinite-scroll feed. Content is a
// tagged union keyed by Type; it must satisfy the validator for its declared
// type before it is persisted.
type StudyContent struct {
  ID        string           `json:"id"`
  Type      ContentType      `json:"type"`
  Title     string           `json:"title"`
  Content   map[string]any   `json:"content"`
  Metadata  *ContentMetadata `json:"metadata,omitempty"`
  AuthorID  string           `json:"authorId,omitempty"`
  CreatedAt string           `json:"createdAt,omitempty"`
}

func IsFlashcardContent(content map[string]any) bool {
  if content == nil {
    return false
  }
  _, qOK := content["question"].(string)
  _, aOK := content["answer"].(string)
  return qOK && aOK
}

func IsQuizContent(content map[string]any) bool {
  if content == nil {
    return false
  }
  _, qOK := content["question"].(string)
  _, optsOK := content["options"].([]any)
  switch content["correctAnswer"].(type) {
  case float64, int:
  default:
    return false
  }
  return qOK && optsOK
}

func IsLessonContent(content map[string]any) bool {
  if content == nil {
    return false
  }
  sections, ok := content["sections"].([]any)
  if !ok {
    return false
  }
  for _, s := range sections {
    section, ok := s.(map[string]any)
    if !ok {
      return false
    }
    if _, ok := section["heading"].(string); !ok {
      return false
    }
    if _, ok := section["body"].(string); !ok {
      return false
    }
  }
  return true
}

func IsSummaryContent(content map[string]any) bool {
  if content == nil {
    return false
  }
  _, ok := content["summary"].(string)
  return ok
}

// ValidateContent reports whether content satisfies the shape required by the
// declared content type.
func ValidateContent(contentType ContentType, content map[string]any) bool {
  switch contentType {
  case ContentTypeFlashcard:
    return IsFlashcardContent(content)
  case ContentTypeQuiz:
    return IsQuizContent(content)
  case ContentTypeLesson:
    return IsLessonContent(content)
  case ContentTypeSummary:
    return IsSummaryContent(content)
  default:
    return false
  }
}
