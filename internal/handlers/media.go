package handlers

import (
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yungbote/studyai-backend/internal/logger"
  "github.com/yungbote/studyai-backend/internal/services"
)

type MediaHandler struct {
  log *logger.Logger
  svc services.MediaService
}

func NewMediaHandler(log *logger.Logger, svc services.MediaService) *MediaHandler {
  return &MediaHandler{log: log.With("handler", "MediaHandler"), svc: svc}
}

// POST /api/media/presigned-url
func (h *MediaHandler) PresignedURL(c *gin.Context) {
  var req services.UploadRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("fileName and contentType are required"))
    return
  }
  result, err := h.svc.PresignUpload(c.Request.Context(), req)
  if err != nil {
    respondServiceError(c, err, "Failed to generate presigned URL")
    return
  }
  RespondOK(c, result)
}

type presignedURLsRequest struct {
  Files []services.UploadRequest `json:"files"`
}

// POST /api/media/presigned-urls
func (h *MediaHandler) PresignedURLs(c *gin.Context) {
  var req presignedURLsRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("files array is required"))
    return
  }
  results, err := h.svc.PresignUploadBatch(c.Request.Context(), req.Files)
  if err != nil {
    respondServiceError(c, err, "Failed to generate presigned URLs")
    return
  }
  RespondOK(c, gin.H{"presignedUrls": results})
}
