package handlers

import (
  "errors"
  "fmt"
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/yungbote/studyai-backend/internal/apierr"
  "github.com/yungbote/studyai-backend/internal/logger"
  "github.com/yungbote/studyai-backend/internal/requestdata"
  "github.com/yungbote/studyai-backend/internal/services"
  "github.com/yungbote/studyai-backend/internal/types"
)

type ContentHandler struct {
  log *logger.Logger
  svc services.ContentService
}

func NewContentHandler(log *logger.Logger, svc services.ContentService) *ContentHandler {
  return &ContentHandler{log: log.With("handler", "ContentHandler"), svc: svc}
}

// respondServiceError maps classified errors to their status and hides
// everything else behind a generic message.
func respondServiceError(c *gin.Context, err error, generic string) {
  var apiErr *apierr.Error
  if errors.As(err, &apiErr) {
    RespondError(c, apiErr.Status, apiErr.Code, apiErr)
    return
  }
  RespondError(c, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s", generic))
}

// GET /api/contents?offset=&limit=&type=&cursor=
func (h *ContentHandler) ListContents(c *gin.Context) {
  offset, err := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 32)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("Invalid pagination parameters"))
    return
  }
  limit, err := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 32)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("Invalid pagination parameters"))
    return
  }
  params := services.FetchParams{
    Offset: int32(offset),
    Limit:  int32(limit),
    Cursor: c.Query("cursor"),
  }
  if t := c.Query("type"); t != "" && t != "all" {
    params.Type = types.ContentType(t)
  }
  page, err := h.svc.Fetch(c.Request.Context(), params)
  if err != nil {
    respondServiceError(c, err, "Failed to fetch study content")
    return
  }
  RespondOK(c, page)
}

// GET /api/contents/:id
func (h *ContentHandler) GetContent(c *gin.Context) {
  content, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
  if err != nil {
    respondServiceError(c, err, "Failed to fetch study content")
    return
  }
  if content == nil {
    RespondError(c, http.StatusNotFound, "content_not_found", fmt.Errorf("Content not found"))
    return
  }
  RespondOK(c, content)
}

// POST /api/contents
func (h *ContentHandler) CreateContent(c *gin.Context) {
  var input services.ContentInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("Invalid request body"))
    return
  }
  rd := requestdata.GetRequestData(c.Request.Context())
  authorID := ""
  if rd != nil {
    authorID = rd.UserID
  }
  content, err := h.svc.Create(c.Request.Context(), authorID, input)
  if err != nil {
    respondServiceError(c, err, "Failed to create content")
    return
  }
  c.JSON(http.StatusCreated, content)
}

// PUT /api/contents/:id
func (h *ContentHandler) UpdateContent(c *gin.Context) {
  var input services.ContentInput
  if err := c.ShouldBindJSON(&input); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("Invalid request body"))
    return
  }
  if err := h.svc.Update(c.Request.Context(), c.Param("id"), input); err != nil {
    respondServiceError(c, err, "Failed to update content")
    return
  }
  RespondOK(c, gin.H{"success": true})
}

type deleteContentRequest struct {
  MediaKeys []string `json:"mediaKeys"`
}

// DELETE /api/contents/:id
// An optional mediaKeys body upgrades the call to delete-with-media.
func (h *ContentHandler) DeleteContent(c *gin.Context) {
  var req deleteContentRequest
  _ = c.ShouldBindJSON(&req)

  if len(req.MediaKeys) > 0 {
    result, err := h.svc.DeleteWithMedia(c.Request.Context(), c.Param("id"), req.MediaKeys)
    if err != nil {
      respondServiceError(c, err, "Failed to delete content")
      return
    }
    RespondOK(c, gin.H{"success": true, "media": result})
    return
  }
  if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
    respondServiceError(c, err, "Failed to delete content")
    return
  }
  RespondOK(c, gin.H{"success": true})
}
