package recipe

import (
	"context"
	"errors"
	"testing"

	"recipe-chatbot/internal/core/ai/cache"
	"recipe-chatbot/internal/infrastructure/config"
	"recipe-chatbot/internal/pkg/common"
)

type fakeCompleter struct {
	response string
	err      error
	calls    int
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt string, messages []common.ChatMessage) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestCache(t *testing.T) *cache.CacheManager {
	t.Helper()
	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.MaxSize = 100
	return cache.NewManager(cfg)
}

func TestGetRecipeDetail(t *testing.T) {
	completer := &fakeCompleter{response: "```json\n{\"name\": \"Beef Stew\", \"description\": \"Hearty and warm.\", \"servings\": \"4\", \"difficulty\": \"easy\", \"time_estimate\": \"2 hours\", \"ingredients\": [\"beef\", \"carrots\"], \"steps\": [\"Brown the beef.\", \"Simmer for two hours.\"], \"tips\": [\"Better the next day.\"]}\n```"}
	svc := NewDetailService(completer, newTestCache(t))

	detail, err := svc.GetRecipeDetail(context.Background(), "Beef Stew")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Name != "Beef Stew" {
		t.Errorf("name = %q", detail.Name)
	}
	if detail.Difficulty != "Easy" {
		t.Errorf("difficulty = %q, want Easy", detail.Difficulty)
	}
	if len(detail.Steps) != 2 {
		t.Errorf("steps = %v", detail.Steps)
	}
	if len(detail.Ingredients) != 2 {
		t.Errorf("ingredients = %v", detail.Ingredients)
	}
}

func TestGetRecipeDetailBackfillsMissingFields(t *testing.T) {
	completer := &fakeCompleter{response: `{"steps": ["Mix everything.", "Serve."]}`}
	svc := NewDetailService(completer, nil)

	detail, err := svc.GetRecipeDetail(context.Background(), "Mystery Bowl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Name != "Mystery Bowl" {
		t.Errorf("name = %q, want requested name", detail.Name)
	}
	if detail.Servings != "2" {
		t.Errorf("servings = %q, want default", detail.Servings)
	}
	if detail.Difficulty != "Medium" {
		t.Errorf("difficulty = %q, want default", detail.Difficulty)
	}
	if detail.TimeEstimate != "30 minutes" {
		t.Errorf("time estimate = %q, want default", detail.TimeEstimate)
	}
	if detail.Ingredients == nil || detail.Tips == nil {
		t.Error("slices must be non-nil after backfill")
	}
}

func TestGetRecipeDetailRequiresSteps(t *testing.T) {
	completer := &fakeCompleter{response: `{"name": "Beef Stew", "ingredients": ["beef"]}`}
	svc := NewDetailService(completer, nil)

	if _, err := svc.GetRecipeDetail(context.Background(), "Beef Stew"); err == nil {
		t.Fatal("expected error when steps are missing")
	}
}

func TestGetRecipeDetailCachesResult(t *testing.T) {
	completer := &fakeCompleter{response: `{"name": "Pad Thai", "steps": ["Soak noodles.", "Stir-fry."]}`}
	svc := NewDetailService(completer, newTestCache(t))

	if _, err := svc.GetRecipeDetail(context.Background(), "Pad Thai"); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	detail, err := svc.GetRecipeDetail(context.Background(), "Pad Thai")
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if completer.calls != 1 {
		t.Errorf("completer called %d times, want 1", completer.calls)
	}
	if detail.Name != "Pad Thai" {
		t.Errorf("cached name = %q", detail.Name)
	}
}

func TestGetRecipeDetailEmptyName(t *testing.T) {
	svc := NewDetailService(&fakeCompleter{}, nil)
	if _, err := svc.GetRecipeDetail(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestGetRecipeDetailCompleterError(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("boom")}
	svc := NewDetailService(completer, nil)

	if _, err := svc.GetRecipeDetail(context.Background(), "Beef Stew"); err == nil {
		t.Fatal("expected error when completer fails")
	}
}
