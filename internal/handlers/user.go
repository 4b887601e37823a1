package handlers

import (
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yungbote/studyai-backend/internal/logger"
  "github.com/yungbote/studyai-backend/internal/requestdata"
  "github.com/yungbote/studyai-backend/internal/services"
)

type UserHandler struct {
  log *logger.Logger
  svc services.UserService
}

func NewUserHandler(log *logger.Logger, svc services.UserService) *UserHandler {
  return &UserHandler{log: log.With("handler", "UserHandler"), svc: svc}
}

// GET /api/user
func (h *UserHandler) GetMe(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == "" {
    RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("Unauthorized"))
    return
  }
  user, err := h.svc.GetOrCreate(c.Request.Context(), rd.UserID, rd.Email)
  if err != nil {
    respondServiceError(c, err, "Failed to fetch user")
    return
  }
  RespondOK(c, user)
}

// GET /api/user/submissions
func (h *UserHandler) ListSubmissions(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == "" {
    RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("Unauthorized"))
    return
  }
  submissions, err := h.svc.ListSubmissions(c.Request.Context(), rd.UserID)
  if err != nil {
    respondServiceError(c, err, "Failed to list submissions")
    return
  }
  RespondOK(c, gin.H{"submissions": submissions})
}
