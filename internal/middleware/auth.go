package middleware

import (
  "fmt"
  "net/http"
  "strings"

  "github.com/gin-gonic/gin"
  "github.com/golang-jwt/jwt/v5"

  "github.com/yungbote/studyai-backend/internal/logger"
  "github.com/yungbote/studyai-backend/internal/requestdata"
)

// AuthMiddleware verifies the HS256 session token minted by the external
// OAuth/session layer. It only checks the signature and extracts identity;
// login itself happens outside this service.
type AuthMiddleware struct {
  log           *logger.Logger
  sessionSecret []byte
}

func NewAuthMiddleware(log *logger.Logger, sessionSecret string) *AuthMiddleware {
  middlewareLog := log.With("middleware", "AuthMiddleware")
  return &AuthMiddleware{log: middlewareLog, sessionSecret: []byte(sessionSecret)}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    tokenString := extractBearerToken(c)
    if tokenString == "" {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
      return
    }
    rd, err := am.parseSessionToken(tokenString)
    if err != nil {
      am.log.Debug("Session token rejected", "error", err)
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
      return
    }
    ctx := requestdata.WithRequestData(c.Request.Context(), rd)
    c.Request = c.Request.WithContext(ctx)
    c.Next()
  }
}

func (am *AuthMiddleware) parseSessionToken(tokenString string) (*requestdata.RequestData, error) {
  token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
    }
    return am.sessionSecret, nil
  })
  if err != nil {
    return nil, err
  }
  claims, ok := token.Claims.(jwt.MapClaims)
  if !ok || !token.Valid {
    return nil, fmt.Errorf("invalid session token")
  }
  sub, _ := claims["sub"].(string)
  email, _ := claims["email"].(string)
  if sub == "" {
    return nil, fmt.Errorf("session token missing subject")
  }
  return &requestdata.RequestData{UserID: sub, Email: email}, nil
}

func extractBearerToken(c *gin.Context) string {
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return authHeader[7:]
  }
  return ""
}
