package chat

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"recipe-chatbot/internal/core/store"
	"recipe-chatbot/internal/pkg/common"
)

type fakeCompleter struct {
	response    string
	err         error
	calls       int
	gotSystem   string
	gotMessages []common.ChatMessage
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt string, messages []common.ChatMessage) (string, error) {
	f.calls++
	f.gotSystem = systemPrompt
	f.gotMessages = messages
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestService(completer *fakeCompleter) (*Service, *store.MemoryRecipeStore, *store.MemoryProfileStore) {
	recipeStore := store.NewMemoryRecipeStore()
	profileStore := store.NewMemoryProfileStore()
	return NewService(completer, profileStore, recipeStore, 10), recipeStore, profileStore
}

func TestHandleMessageTerminalIntents(t *testing.T) {
	tests := []struct {
		name    string
		message string
		class   common.Classification
	}{
		{name: "developer", message: "Who made this app?", class: common.ClassDeveloper},
		{name: "identity", message: "What can you do?", class: common.ClassIdentity},
		{name: "gratitude", message: "thanks, you're awesome!", class: common.ClassGratitude},
		{name: "off topic", message: "Who won the election?", class: common.ClassOffTopic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &fakeCompleter{response: "should not be used"}
			svc, _, _ := newTestService(completer)

			resp, err := svc.HandleMessage(context.Background(), "", &common.ChatRequest{Message: tt.message})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Classification != tt.class {
				t.Errorf("classification = %v, want %v", resp.Classification, tt.class)
			}
			if resp.Message == "" {
				t.Error("expected a canned reply, got empty message")
			}
			if completer.calls != 0 {
				t.Errorf("completer called %d times for terminal intent", completer.calls)
			}
			if resp.DetectedRecipes == nil || len(resp.DetectedRecipes) != 0 {
				t.Errorf("detected recipes = %v, want empty non-nil slice", resp.DetectedRecipes)
			}
		})
	}
}

func TestHandleMessageOnTopicStructured(t *testing.T) {
	block := "```json\n{\"recipes\": [{\"title\": \"Garlic Butter Chicken\", \"servings\": \"4\", \"difficulty\": \"easy\"}, {\"title\": \"Chicken Fried Rice\", \"servings\": \"2\", \"difficulty\": \"medium\"}]}\n```"
	completer := &fakeCompleter{response: "Sounds delicious! Here are my top picks.\n\n" + block}
	svc, recipeStore, _ := newTestService(completer)

	resp, err := svc.HandleMessage(context.Background(), "user-1", &common.ChatRequest{
		Message: "What can I make with chicken and rice?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Classification != common.ClassOnTopic {
		t.Fatalf("classification = %v, want on topic", resp.Classification)
	}
	wantRecipes := []string{"Garlic Butter Chicken", "Chicken Fried Rice"}
	if !reflect.DeepEqual(resp.DetectedRecipes, wantRecipes) {
		t.Errorf("detected recipes = %v, want %v", resp.DetectedRecipes, wantRecipes)
	}
	wantIngredients := []string{"chicken", "rice"}
	if !reflect.DeepEqual(resp.DetectedIngredients, wantIngredients) {
		t.Errorf("detected ingredients = %v, want %v", resp.DetectedIngredients, wantIngredients)
	}
	if strings.Contains(resp.Message, "json") || strings.Contains(resp.Message, "{") {
		t.Errorf("message leaked raw data: %q", resp.Message)
	}
	if resp.Message != "Sounds delicious! Here are my top picks." {
		t.Errorf("message = %q", resp.Message)
	}

	// 寫入是非同步的，輪詢到出現為止
	deadline := time.Now().Add(2 * time.Second)
	for {
		record, err := recipeStore.GetRecipeByName(context.Background(), "Garlic Butter Chicken")
		if err != nil {
			t.Fatalf("store lookup failed: %v", err)
		}
		if record != nil {
			if record.Name != "Garlic Butter Chicken" {
				t.Errorf("stored name = %q", record.Name)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("detected recipe was never persisted")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHandleMessageEndToEnd(t *testing.T) {
	completer := &fakeCompleter{response: "Try Chicken Fried Rice!\n```json\n{\"recipes\":[{\"title\":\"Chicken Fried Rice\",\"servings\":\"2\",\"difficulty\":\"Easy\"}]}\n```"}
	svc, _, _ := newTestService(completer)

	resp, err := svc.HandleMessage(context.Background(), "", &common.ChatRequest{
		Message: "I have chicken and rice, what can I make?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Message != "Try Chicken Fried Rice!" {
		t.Errorf("message = %q", resp.Message)
	}
	if !reflect.DeepEqual(resp.DetectedRecipes, []string{"Chicken Fried Rice"}) {
		t.Errorf("detected recipes = %v", resp.DetectedRecipes)
	}
	if !reflect.DeepEqual(resp.DetectedIngredients, []string{"chicken", "rice"}) {
		t.Errorf("detected ingredients = %v", resp.DetectedIngredients)
	}
}

func TestHandleMessageOnTopicTextExtraction(t *testing.T) {
	completer := &fakeCompleter{response: "You have great options tonight!\n\n**Lemon Herb Salmon**\nBright and quick.\n\n**Creamy Mushroom Pasta**\nComfort in a bowl."}
	svc, _, _ := newTestService(completer)

	resp, err := svc.HandleMessage(context.Background(), "", &common.ChatRequest{Message: "dinner ideas with salmon?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantRecipes := []string{"Lemon Herb Salmon", "Creamy Mushroom Pasta"}
	if !reflect.DeepEqual(resp.DetectedRecipes, wantRecipes) {
		t.Errorf("detected recipes = %v, want %v", resp.DetectedRecipes, wantRecipes)
	}
	if resp.Message == "" {
		t.Error("expected sanitized message")
	}
}

func TestHandleMessageAuthErrorSurfaces(t *testing.T) {
	completer := &fakeCompleter{err: common.ErrLLMAuth}
	svc, _, _ := newTestService(completer)

	_, err := svc.HandleMessage(context.Background(), "", &common.ChatRequest{Message: "how do I cook rice?"})
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
	var custom *common.CustomError
	if !errors.As(err, &custom) {
		t.Fatalf("expected CustomError, got %T", err)
	}
	if custom.Code != common.ErrCodeAPIKeyRequired {
		t.Errorf("code = %q, want %q", custom.Code, common.ErrCodeAPIKeyRequired)
	}
}

func TestHandleMessageLLMFailureFallsBack(t *testing.T) {
	completer := &fakeCompleter{err: common.ErrLLMUnavailable}
	svc, _, _ := newTestService(completer)

	resp, err := svc.HandleMessage(context.Background(), "", &common.ChatRequest{Message: "what can I do with tofu and broccoli?"})
	if err != nil {
		t.Fatalf("fallback should not error: %v", err)
	}
	if resp.Message == "" {
		t.Fatal("expected fallback message")
	}
	if !strings.Contains(resp.Message, "broccoli and tofu") {
		t.Errorf("fallback should mention detected ingredients: %q", resp.Message)
	}
	if resp.DetectedRecipes == nil {
		t.Error("detected recipes must be non-nil")
	}
}

func TestHandleMessageHistoryTrimmed(t *testing.T) {
	completer := &fakeCompleter{response: "Try **Beef Stew** tonight, it rewards patience."}
	svc, _, _ := newTestService(completer)

	history := make([]common.ChatMessage, 0, 15)
	for i := 0; i < 15; i++ {
		history = append(history, common.ChatMessage{Role: "user", Content: "older message"})
	}
	history[14].Content = "most recent"

	_, err := svc.HandleMessage(context.Background(), "", &common.ChatRequest{
		Message: "ok what about beef?",
		History: history,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 10 則歷史加上當前訊息
	if len(completer.gotMessages) != 11 {
		t.Fatalf("sent %d messages, want 11", len(completer.gotMessages))
	}
	if completer.gotMessages[9].Content != "most recent" {
		t.Errorf("history should keep the newest messages, got %q", completer.gotMessages[9].Content)
	}
	last := completer.gotMessages[10]
	if last.Role != "user" || last.Content != "ok what about beef?" {
		t.Errorf("last message = %+v", last)
	}
}

func TestHandleMessagePersonalizationInPrompt(t *testing.T) {
	completer := &fakeCompleter{response: "How about a **Vegetable Stir-Fry**? Quick and healthy."}
	svc, _, profileStore := newTestService(completer)

	profileStore.SetProfile("user-7", common.UserProfile{
		IsVegan:   true,
		Allergies: []string{"peanuts"},
	})

	_, err := svc.HandleMessage(context.Background(), "user-7", &common.ChatRequest{Message: "easy dinner recipe please"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(completer.gotSystem, "vegan") {
		t.Errorf("system prompt missing vegan context: %q", completer.gotSystem)
	}
	if !strings.Contains(completer.gotSystem, "peanuts") {
		t.Errorf("system prompt missing allergy: %q", completer.gotSystem)
	}
}
