package common

import (
	"strings"
	"time"
)

// ChatMessage 對話訊息，依插入順序構成對話歷史
type ChatMessage struct {
	Role    string `json:"role"` // user / assistant / system
	Content string `json:"content"`
}

// Classification 訊息意圖分類結果
// 依固定優先序判定：Developer → Identity → Gratitude → OffTopic → OnTopic，
// 先命中者為準，單一訊息至多一種分類
type Classification string

const (
	ClassDeveloper Classification = "developer"
	ClassIdentity  Classification = "identity"
	ClassGratitude Classification = "gratitude"
	ClassOffTopic  Classification = "off_topic"
	ClassOnTopic   Classification = "on_topic"
)

// StructuredRecipe LLM 尾端 JSON 區塊中 recipes 陣列的單一元素
// title 為必填；解析時容忍 name 作為 title 的別名
type StructuredRecipe struct {
	Title      string `json:"title"`
	Servings   string `json:"servings,omitempty"`
	Difficulty string `json:"difficulty,omitempty"` // Easy / Medium / Hard
}

// ChatRequest 聊天請求
type ChatRequest struct {
	Message   string        `json:"message"`
	History   []ChatMessage `json:"history,omitempty"`
	SessionID string        `json:"sessionId,omitempty"`
}

// ChatResponse 對外回應；classification 非 on_topic 時 detectedRecipes 必為空
type ChatResponse struct {
	Message             string         `json:"message"`
	DetectedIngredients []string       `json:"detectedIngredients"`
	DetectedRecipes     []string       `json:"detectedRecipes"`
	Classification      Classification `json:"classification"`
	IsDeveloperQuestion bool           `json:"isDeveloperQuestion"`
	IsIdentityQuestion  bool           `json:"isIdentityQuestion"`
	IsGratitude         bool           `json:"isGratitude"`
	IsOffTopic          bool           `json:"isOffTopic"`
}

// UserProfile 用戶個人化資料，餵進 system prompt 調整 LLM 輸出
type UserProfile struct {
	IsVegan             bool     `json:"isVegan"`
	IsDiabetic          bool     `json:"isDiabetic"`
	IsOnDiet            bool     `json:"isOnDiet"`
	Allergies           []string `json:"allergies,omitempty"`
	PrefersSpicy        bool     `json:"prefersSpicy"`
	PrefersSalty        bool     `json:"prefersSalty"`
	DislikedIngredients []string `json:"dislikedIngredients,omitempty"`
	Nationality         string   `json:"nationality,omitempty"`
	Age                 int      `json:"age,omitempty"`
	Gender              string   `json:"gender,omitempty"`
}

// RecipeRecord 已偵測到的食譜紀錄
type RecipeRecord struct {
	ID         string    `json:"id"` // slug，由名稱決定
	Name       string    `json:"name"`
	UserID     string    `json:"userId,omitempty"`
	DetectedAt time.Time `json:"detectedAt"`
}

// RecipeDetail 單一食譜的完整內容（點卡片後才生成）
type RecipeDetail struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Servings     string   `json:"servings"`
	Difficulty   string   `json:"difficulty"`
	TimeEstimate string   `json:"timeEstimate"`
	Ingredients  []string `json:"ingredients"`
	Steps        []string `json:"steps"`
	Tips         []string `json:"tips,omitempty"`
}

// NormalizeRole 將任意 role 字串收斂為 user / assistant / system
func NormalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "assistant", "bot", "ai", "model":
		return "assistant"
	case "system":
		return "system"
	default:
		return "user"
	}
}

// TrimHistory 只保留最後 n 則訊息，並丟棄空白內容
func TrimHistory(history []ChatMessage, n int) []ChatMessage {
	trimmed := make([]ChatMessage, 0, len(history))
	for _, msg := range history {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		trimmed = append(trimmed, ChatMessage{
			Role:    NormalizeRole(msg.Role),
			Content: msg.Content,
		})
	}
	if len(trimmed) > n {
		trimmed = trimmed[len(trimmed)-n:]
	}
	return trimmed
}
