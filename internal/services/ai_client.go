package services

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "io"
  "net/http"
  "time"

  "github.com/yungbote/studyai-backend/internal/logger"
  "github.com/yungbote/studyai-backend/internal/utils"
)

// AIClient is a single-call passthrough to a hosted chat-completion API.
// Upstream error detail is logged server-side and never surfaced to callers.
type AIClient interface {
  GenerateMissionOutput(ctx context.Context, systemPrompt, userInput string) (*AIResponse, error)
}

type AIUsage struct {
  PromptTokens     int `json:"promptTokens"`
  CompletionTokens int `json:"completionTokens"`
  TotalTokens      int `json:"totalTokens"`
}

type AIResponse struct {
  OutputText string   `json:"outputText"`
  Usage      *AIUsage `json:"usage,omitempty"`
}

type aiClient struct {
  httpClient  *http.Client
  log         *logger.Logger
  apiKey      string
  baseURL     string
  model       string
  temperature float32
}

func NewAIClient(log *logger.Logger) (AIClient, error) {
  serviceLog := log.With("service", "AIClient")
  apiKey := utils.GetEnv("OPENAI_API_KEY", "", log)
  if apiKey == "" {
    return nil, fmt.Errorf("OPENAI_API_KEY is not set")
  }
  baseURL := utils.GetEnv("OPENAI_BASE_URL", "https://api.openai.com/v1", log)
  model := utils.GetEnv("OPENAI_MODEL", "gpt-3.5-turbo", log)
  timeoutSec := utils.GetEnvAsInt("OPENAI_TIMEOUT_SECONDS", 60, log)
  return &aiClient{
    httpClient: &http.Client{
      Timeout: time.Duration(timeoutSec) * time.Second,
    },
    log:         serviceLog,
    apiKey:      apiKey,
    baseURL:     baseURL,
    model:       model,
    temperature: 0.7,
  }, nil
}

type chatMessage struct {
  Role    string `json:"role"`
  Content string `json:"content"`
}

type chatCompletionRequest struct {
  Model       string        `json:"model"`
  Messages    []chatMessage `json:"messages"`
  Temperature float32       `json:"temperature"`
}

type chatCompletionResponse struct {
  Choices []struct {
    Message struct {
      Content string `json:"content"`
    } `json:"message"`
  } `json:"choices"`
  Usage *struct {
    PromptTokens     int `json:"prompt_tokens"`
    CompletionTokens int `json:"completion_tokens"`
    TotalTokens      int `json:"total_tokens"`
  } `json:"usage"`
}

func (c *aiClient) GenerateMissionOutput(ctx context.Context, systemPrompt, userInput string) (*AIResponse, error) {
  body := chatCompletionRequest{
    Model: c.model,
    Messages: []chatMessage{
      {Role: "system", Content: systemPrompt},
      {Role: "user", Content: userInput},
    },
    Temperature: c.temperature,
  }
  var buf bytes.Buffer
  if err := json.NewEncoder(&buf).Encode(body); err != nil {
    c.log.Error("Failed to encode chat completion request", "error", err)
    return nil, fmt.Errorf("Failed to generate AI response")
  }
  req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", &buf)
  if err != nil {
    c.log.Error("Failed to build chat completion request", "error", err)
    return nil, fmt.Errorf("Failed to generate AI response")
  }
  req.Header.Set("Authorization", "Bearer "+c.apiKey)
  req.Header.Set("Content-Type", "application/json")

  resp, err := c.httpClient.Do(req)
  if err != nil {
    c.log.Error("Chat completion call failed", "error", err)
    return nil, fmt.Errorf("Failed to generate AI response")
  }
  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    c.log.Error("Failed to read chat completion response", "error", readErr)
    return nil, fmt.Errorf("Failed to generate AI response")
  }
  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    c.log.Error("Chat completion returned non-2xx", "status", resp.StatusCode, "body", string(raw))
    return nil, fmt.Errorf("Failed to generate AI response")
  }
  var parsed chatCompletionResponse
  if err := json.Unmarshal(raw, &parsed); err != nil {
    c.log.Error("Failed to decode chat completion response", "error", err, "body", string(raw))
    return nil, fmt.Errorf("Failed to generate AI response")
  }
  out := &AIResponse{}
  if len(parsed.Choices) > 0 {
    out.OutputText = parsed.Choices[0].Message.Content
  }
  if parsed.Usage != nil {
    out.Usage = &AIUsage{
      PromptTokens:     parsed.Usage.PromptTokens,
      CompletionTokens: parsed.Usage.CompletionTokens,
      TotalTokens:      parsed.Usage.TotalTokens,
    }
  }
  return out, nil
}
