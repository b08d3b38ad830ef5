package chat

import (
	"context"
	"errors"
	"time"

	"recipe-chatbot/internal/pkg/common"

	"go.uber.org/zap"
)

// Completer 外部 LLM 能力：送出 system prompt 與對話歷史，取回文字
type Completer interface {
	Complete(ctx context.Context, systemPrompt string, messages []common.ChatMessage) (string, error)
}

// ProfileStore 用戶個人化資料來源，查不到不是錯誤
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*common.UserProfile, error)
}

// RecipeStore 偵測到的食譜儲存
type RecipeStore interface {
	UpsertDetectedRecipe(ctx context.Context, name, userID string) (string, error)
	GetRecipeByName(ctx context.Context, name string) (*common.RecipeRecord, error)
}

// Service 聊天協調器：分類 → LLM → 結構化解析 → 文字擷取 fallback →
// 清理 → 組裝回應
type Service struct {
	completer    Completer
	profileStore ProfileStore
	recipeStore  RecipeStore
	historyLimit int
}

// NewService 創建聊天服務
func NewService(completer Completer, profileStore ProfileStore, recipeStore RecipeStore, historyLimit int) *Service {
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &Service{
		completer:    completer,
		profileStore: profileStore,
		recipeStore:  recipeStore,
		historyLimit: historyLimit,
	}
}

// HandleMessage 處理一則用戶訊息
// 非 on_topic 分類皆為終端狀態，直接回罐頭回覆；on_topic 才進 LLM 子流程。
// 只有 LLM 憑證錯誤會往上拋，其餘失敗一律就地回退成可用回覆
func (s *Service) HandleMessage(ctx context.Context, userID string, req *common.ChatRequest) (*common.ChatResponse, error) {
	classification := Classify(req.Message)
	ingredients := ExtractIngredients(req.Message)

	resp := &common.ChatResponse{
		DetectedIngredients: ingredients,
		DetectedRecipes:     []string{},
		Classification:      classification,
		IsDeveloperQuestion: classification == common.ClassDeveloper,
		IsIdentityQuestion:  classification == common.ClassIdentity,
		IsGratitude:         classification == common.ClassGratitude,
		IsOffTopic:          classification == common.ClassOffTopic,
	}

	switch classification {
	case common.ClassDeveloper:
		resp.Message = pickReply(developerReplies)
		return resp, nil
	case common.ClassIdentity:
		resp.Message = pickReply(identityReplies)
		return resp, nil
	case common.ClassGratitude:
		resp.Message = pickReply(gratitudeReplies)
		return resp, nil
	case common.ClassOffTopic:
		resp.Message = pickReply(offTopicReplies)
		return resp, nil
	}

	return s.handleOnTopic(ctx, userID, req, resp)
}

// handleOnTopic on_topic 子流程
func (s *Service) handleOnTopic(ctx context.Context, userID string, req *common.ChatRequest, resp *common.ChatResponse) (*common.ChatResponse, error) {
	profile := s.lookupProfile(ctx, userID)
	systemPrompt := BuildSystemPrompt(profile)

	messages := common.TrimHistory(req.History, s.historyLimit)
	messages = append(messages, common.ChatMessage{Role: "user", Content: req.Message})

	start := time.Now()
	rawText, err := s.completer.Complete(ctx, systemPrompt, messages)
	common.LogAICall(time.Since(start), err, req.SessionID)

	if err != nil {
		// 憑證問題沒有任何回退意義，是唯一往外拋的情況
		if errors.Is(err, common.ErrLLMAuth) {
			return nil, common.ErrAPIKeyRequired
		}
		return s.composeFallback(req.Message, resp), nil
	}

	// 優先吃結構化輸出，沒有才退回文字擷取
	var recipeNames []string
	consumedBlock := ""
	if structured := ParseStructuredRecipes(rawText); structured != nil {
		consumedBlock = structured.MatchedBlock
		for _, r := range structured.Recipes {
			recipeNames = append(recipeNames, r.Title)
		}
	} else {
		recipeNames = ExtractRecipesFromResponse(rawText)
	}

	resp.Message = SanitizeResponse(rawText, consumedBlock)
	if recipeNames == nil {
		recipeNames = []string{}
	}
	resp.DetectedRecipes = recipeNames

	s.persistRecipes(recipeNames, userID)

	return resp, nil
}

// composeFallback LLM 呼叫失敗時的本地回退：罐頭烹飪建議，
// 食譜改從用戶訊息本身推導（此時沒有 LLM 文字可用）
func (s *Service) composeFallback(userMessage string, resp *common.ChatResponse) *common.ChatResponse {
	resp.Message = ComposeLLMFallback(resp.DetectedIngredients)
	recipes := ExtractRecipesFromResponse(userMessage)
	if recipes == nil {
		recipes = []string{}
	}
	resp.DetectedRecipes = recipes
	return resp
}

// lookupProfile 查詢失敗只記錄，個人化脈絡直接省略
func (s *Service) lookupProfile(ctx context.Context, userID string) *common.UserProfile {
	if s.profileStore == nil || userID == "" {
		return nil
	}
	profile, err := s.profileStore.GetProfile(ctx, userID)
	if err != nil {
		common.LogWarn("用戶資料查詢失敗，略過個人化",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil
	}
	return profile
}

// persistRecipes fire-and-forget 寫入偵測到的食譜，失敗只記錄
func (s *Service) persistRecipes(names []string, userID string) {
	if s.recipeStore == nil || len(names) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, name := range names {
			if _, err := s.recipeStore.UpsertDetectedRecipe(ctx, name, userID); err != nil {
				common.LogWarn("食譜寫入失敗",
					zap.Error(err),
					zap.String("recipe", name),
				)
			}
		}
	}()
}
