package service

import (
	"context"
	"errors"
	"testing"

	"recipe-chatbot/internal/infrastructure/config"
	"recipe-chatbot/internal/pkg/common"
)

func TestCompleteMissingAPIKey(t *testing.T) {
	cfg := &config.Config{}
	cfg.OpenRouter.APIKey = "   "
	svc := NewOpenRouterService(cfg)

	_, err := svc.Complete(context.Background(), "system", []common.ChatMessage{
		{Role: "user", Content: "hello"},
	})
	if err == nil {
		t.Fatal("expected error without api key")
	}
	if !errors.Is(err, common.ErrLLMAuth) {
		t.Errorf("error should wrap ErrLLMAuth, got %v", err)
	}
}
