package service

import (
	"context"

	"recipe-chatbot/internal/core/ai/cache"
	openrouter "recipe-chatbot/internal/core/service"
	"recipe-chatbot/internal/infrastructure/config"
	"recipe-chatbot/internal/pkg/common"
)

// Service AI 服務：OpenRouter 之上的統一門面，帶回應快取
type Service struct {
	config       *config.Config
	openRouter   *openrouter.OpenRouterService
	cacheManager *cache.CacheManager
}

// NewService 創建 AI 服務
func NewService(cfg *config.Config, cacheManager *cache.CacheManager) (*Service, error) {
	return &Service{
		config:       cfg,
		openRouter:   openrouter.NewOpenRouterService(cfg),
		cacheManager: cacheManager,
	}, nil
}

// Complete 統一對外方法，實作聊天服務的 Completer 介面
// 快取鍵由 system prompt 與完整訊息序列雜湊而成
func (s *Service) Complete(ctx context.Context, systemPrompt string, messages []common.ChatMessage) (string, error) {
	key := s.cacheKey(systemPrompt, messages)

	if s.cacheManager != nil {
		if val, ok := s.cacheManager.Get(key); ok {
			return val, nil
		}
	}

	content, err := s.openRouter.Complete(ctx, systemPrompt, messages)
	if err != nil {
		return "", err
	}

	if s.cacheManager != nil {
		s.cacheManager.Set(key, content)
	}

	return content, nil
}

func (s *Service) cacheKey(systemPrompt string, messages []common.ChatMessage) string {
	parts := make([]string, 0, len(messages)*2+1)
	parts = append(parts, systemPrompt)
	for _, msg := range messages {
		parts = append(parts, msg.Role, msg.Content)
	}
	return "ai:" + cache.HashKey(parts...)
}
