package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"recipe-chatbot/internal/infrastructure/config"
	"recipe-chatbot/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// OpenRouterService OpenRouter 聊天補全服務
type OpenRouterService struct {
	config *config.Config
	client *resty.Client
}

// NewOpenRouterService 創建 OpenRouter 服務
func NewOpenRouterService(cfg *config.Config) *OpenRouterService {
	client := resty.New().
		SetBaseURL("https://openrouter.ai/api/v1").
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://recipe-chatbot.com").
		SetHeader("X-Title", "Recipe Chatbot")

	return &OpenRouterService{
		config: cfg,
		client: client,
	}
}

// Complete 送出 system prompt 與對話歷史，取回助手文字
// 超時由 resty client 控制，失敗不重試：呼叫端拿到錯誤立即走回退路徑。
// 憑證缺失／無效對應 ErrLLMAuth，其餘網路與 HTTP 錯誤對應 ErrLLMUnavailable
func (s *OpenRouterService) Complete(ctx context.Context, systemPrompt string, messages []common.ChatMessage) (string, error) {
	if strings.TrimSpace(s.config.OpenRouter.APIKey) == "" {
		return "", fmt.Errorf("openrouter api key not configured: %w", common.ErrLLMAuth)
	}

	reqMessages := make([]map[string]string, 0, len(messages)+1)
	if strings.TrimSpace(systemPrompt) != "" {
		reqMessages = append(reqMessages, map[string]string{
			"role":    "system",
			"content": systemPrompt,
		})
	}
	for _, msg := range messages {
		reqMessages = append(reqMessages, map[string]string{
			"role":    common.NormalizeRole(msg.Role),
			"content": msg.Content,
		})
	}

	// 構建請求
	req := map[string]interface{}{
		"model":      s.config.OpenRouter.Model,
		"messages":   reqMessages,
		"max_tokens": s.config.OpenRouter.MaxTokens,
	}

	common.LogDebug("Sending request to OpenRouter",
		zap.String("model", s.config.OpenRouter.Model),
		zap.Int("messages", len(reqMessages)),
	)

	// 發送請求
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")

	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %v: %w", err, common.ErrLLMUnavailable)
	}

	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		return "", fmt.Errorf("OpenRouter rejected credential (status %d): %w", resp.StatusCode(), common.ErrLLMAuth)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("OpenRouter API returned status %d: %s: %w", resp.StatusCode(), resp.String(), common.ErrLLMUnavailable)
	}

	// 解析回應：明確的 result 型別，choices 為空或 content 缺失都是錯誤分支
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %v: %w", err, common.ErrLLMUnavailable)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenRouter response: %w", common.ErrLLMEmptyContent)
	}

	content := result.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("empty content in OpenRouter response: %w", common.ErrLLMEmptyContent)
	}

	return content, nil
}
