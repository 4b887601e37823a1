package types

import "strings"

type MediaType string

const (
  MediaTypeImage    MediaType = "image"
  MediaTypeVideo    MediaType = "video"
  MediaTypeAudio    MediaType = "audio"
  MediaTypeDocument MediaType = "document"
)

// MediaAttachment references an object-store file. Its lifecycle is tied to
// presigned-upload completion, independent of the content referencing it.
type MediaAttachment struct {
  Key      string    `json:"key" dynamodbav:"key"`
  URL      string    `json:"url" dynamodbav:"url"`
  FileName string    `json:"fileName" dynamodbav:"fileName"`
  Type     MediaType `json:"type" dynamodbav:"type"`
  Size     int64     `json:"size,omitempty" dynamodbav:"size,omitempty"`
}

// MediaTypeForContentType buckets a MIME type into a media category.
func MediaTypeForContentType(contentType string) MediaType {
  switch {
  case strings.HasPrefix(contentType, "image/"):
    return MediaTypeImage
  case strings.HasPrefix(contentType, "video/"):
    return MediaTypeVideo
  case strings.HasPrefix(contentType, "audio/"):
    return MediaTypeAudio
  default:
    return MediaTypeDocument
  }
}
