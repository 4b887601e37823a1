package handlers

import (
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yungbote/studyai-backend/internal/logger"
  "github.com/yungbote/studyai-backend/internal/requestdata"
  "github.com/yungbote/studyai-backend/internal/services"
)

type MissionHandler struct {
  log *logger.Logger
  svc services.MissionService
}

func NewMissionHandler(log *logger.Logger, svc services.MissionService) *MissionHandler {
  return &MissionHandler{log: log.With("handler", "MissionHandler"), svc: svc}
}

// GET /api/missions
func (h *MissionHandler) ListMissions(c *gin.Context) {
  RespondOK(c, gin.H{"missions": h.svc.List(c.Request.Context())})
}

type submitMissionRequest struct {
  InputText string `json:"inputText"`
}

// POST /api/missions/:id/submissions
func (h *MissionHandler) SubmitMission(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == "" {
    RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("Unauthorized"))
    return
  }
  var req submitMissionRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("inputText is required"))
    return
  }
  result, err := h.svc.Submit(c.Request.Context(), rd.UserID, c.Param("id"), req.InputText)
  if err != nil {
    respondServiceError(c, err, "Failed to submit mission")
    return
  }
  RespondOK(c, result)
}
