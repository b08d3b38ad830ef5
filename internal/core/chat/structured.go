package chat

import (
	"regexp"
	"strings"

	"recipe-chatbot/internal/pkg/common"
)

// StructuredOutput 解析後的尾端 JSON 區塊
// MatchedBlock 保留整段命中的原文（含圍欄），讓呼叫端能從顯示文字中移除
type StructuredOutput struct {
	Recipes      []common.StructuredRecipe
	MatchedBlock string
}

var (
	fencedBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	rawRecipesPattern  = regexp.MustCompile(`(?s)\{[^{}]*"recipes"\s*:\s*\[.*\]\s*\}`)
)

// 寬鬆中繼結構：容忍 name 作為 title 的別名
type looseStructuredRecipe struct {
	Title      string `json:"title"`
	Name       string `json:"name"`
	Servings   string `json:"servings"`
	Difficulty string `json:"difficulty"`
}

type looseStructuredPayload struct {
	Recipes []looseStructuredRecipe `json:"recipes"`
}

// ParseStructuredRecipes 從 LLM 回應擷取尾端 JSON 區塊（圍欄或裸露）
// 並寬鬆解析其中的 recipes 陣列；完全失敗時回傳 nil，
// 呼叫端改走文字擷取 fallback
func ParseStructuredRecipes(responseText string) *StructuredOutput {
	// 先找圍欄區塊
	if m := fencedBlockPattern.FindStringSubmatch(responseText); m != nil {
		if out := parseRecipesBlock(m[1], m[0]); out != nil {
			return out
		}
	}

	// 再找帶 recipes 鍵的裸露 JSON 物件
	if m := rawRecipesPattern.FindString(responseText); m != "" {
		if out := parseRecipesBlock(m, m); out != nil {
			return out
		}
	}

	return nil
}

// parseRecipesBlock 寬鬆解析單一 JSON 區塊並過濾無效項目
func parseRecipesBlock(jsonText, matchedBlock string) *StructuredOutput {
	var payload looseStructuredPayload
	if err := common.SafeParseJSON(jsonText, &payload); err != nil {
		return nil
	}
	if len(payload.Recipes) == 0 {
		return nil
	}

	recipes := make([]common.StructuredRecipe, 0, len(payload.Recipes))
	seen := make(map[string]struct{}, len(payload.Recipes))
	for _, r := range payload.Recipes {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			title = strings.TrimSpace(r.Name)
		}
		if title == "" {
			continue
		}
		cleaned := CleanRecipeName(title)
		if !IsValidRecipeName(cleaned) {
			continue
		}
		key := strings.ToLower(cleaned)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		recipes = append(recipes, common.StructuredRecipe{
			Title:      cleaned,
			Servings:   strings.TrimSpace(r.Servings),
			Difficulty: normalizeDifficulty(r.Difficulty),
		})
	}
	if len(recipes) == 0 {
		return nil
	}

	return &StructuredOutput{
		Recipes:      recipes,
		MatchedBlock: matchedBlock,
	}
}

// normalizeDifficulty 收斂為 Easy / Medium / Hard，其他值丟棄
func normalizeDifficulty(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy":
		return "Easy"
	case "medium":
		return "Medium"
	case "hard":
		return "Hard"
	default:
		return ""
	}
}
