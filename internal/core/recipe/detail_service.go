package recipe

import (
	"context"
	"fmt"
	"strings"

	"recipe-chatbot/internal/core/ai/cache"
	"recipe-chatbot/internal/pkg/common"

	"go.uber.org/zap"
)

// Completer 產生內容用的 LLM 能力
type Completer interface {
	Complete(ctx context.Context, systemPrompt string, messages []common.ChatMessage) (string, error)
}

// DetailService 食譜內容服務：偵測到的食譜只帶名稱，
// 用戶點開卡片時才按需生成完整內容，結果以名稱為鍵快取
type DetailService struct {
	completer    Completer
	cacheManager *cache.CacheManager
}

// NewDetailService 創建食譜內容服務
func NewDetailService(completer Completer, cacheManager *cache.CacheManager) *DetailService {
	return &DetailService{
		completer:    completer,
		cacheManager: cacheManager,
	}
}

// ---------------- 寬鬆版中繼結構：容忍 LLM 輸出的型別雜訊 ----------------

type looseDetail struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Servings     string   `json:"servings"`
	Difficulty   string   `json:"difficulty"`
	TimeEstimate string   `json:"time_estimate"`
	Ingredients  []string `json:"ingredients"`
	Steps        []string `json:"steps"`
	Tips         []string `json:"tips"`
}

// GetRecipeDetail 取得單一食譜的完整內容，快取命中時不進 LLM
func (s *DetailService) GetRecipeDetail(ctx context.Context, name string) (*common.RecipeDetail, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("recipe name cannot be empty")
	}

	cacheKey := "detail:" + common.SlugifyRecipeName(name)
	if s.cacheManager != nil {
		if val, ok := s.cacheManager.Get(cacheKey); ok {
			var detail common.RecipeDetail
			if err := common.ParseJSON(val, &detail); err == nil {
				return &detail, nil
			}
			// 快取條目壞掉就當未命中，重新生成並覆蓋
			common.LogWarn("快取的食譜內容解析失敗，重新生成",
				zap.String("recipe", name),
			)
		}
	}

	prompt := buildDetailPrompt(name)
	resp, err := s.completer.Complete(ctx, "", []common.ChatMessage{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, fmt.Errorf("AI service error: %w", err)
	}
	if strings.TrimSpace(resp) == "" {
		return nil, fmt.Errorf("empty AI response")
	}

	content := strings.TrimSpace(resp)
	// 去除 markdown/fence：取第一個 { 到最後一個 }
	if start, end := strings.Index(content, "{"), strings.LastIndex(content, "}"); start != -1 && end != -1 && end > start {
		content = content[start : end+1]
	}

	// 先用寬鬆版解析，忽略欄位雜訊
	var ld looseDetail
	if err := common.SafeParseJSON(content, &ld); err != nil {
		common.LogError("AI 回應解析失敗(loose)",
			zap.Error(err),
			zap.Int("ai_response_length", len(content)),
		)
		return nil, fmt.Errorf("failed to parse AI response (loose): %w", err)
	}

	detail := backfillDetail(name, &ld)

	if len(detail.Steps) == 0 {
		return nil, fmt.Errorf("recipe steps cannot be empty")
	}

	if s.cacheManager != nil {
		if data, err := common.ToJSON(detail); err == nil {
			s.cacheManager.Set(cacheKey, data)
		} else {
			common.LogWarn("無法快取食譜內容",
				zap.Error(err),
			)
		}
	}

	return detail, nil
}

// backfillDetail 檢查並補充缺漏欄位，確保輸出形狀完整
func backfillDetail(name string, ld *looseDetail) *common.RecipeDetail {
	detail := &common.RecipeDetail{
		Name:         strings.TrimSpace(ld.Name),
		Description:  strings.TrimSpace(ld.Description),
		Servings:     strings.TrimSpace(ld.Servings),
		Difficulty:   strings.TrimSpace(ld.Difficulty),
		TimeEstimate: strings.TrimSpace(ld.TimeEstimate),
		Ingredients:  compactStrings(ld.Ingredients),
		Steps:        compactStrings(ld.Steps),
		Tips:         compactStrings(ld.Tips),
	}

	if detail.Name == "" {
		detail.Name = name
	}
	if detail.Description == "" {
		detail.Description = "A tasty dish worth trying."
	}
	if detail.Servings == "" {
		detail.Servings = "2"
	}
	switch strings.ToLower(detail.Difficulty) {
	case "easy":
		detail.Difficulty = "Easy"
	case "medium":
		detail.Difficulty = "Medium"
	case "hard":
		detail.Difficulty = "Hard"
	default:
		detail.Difficulty = "Medium"
	}
	if detail.TimeEstimate == "" {
		detail.TimeEstimate = "30 minutes"
	}
	if detail.Ingredients == nil {
		detail.Ingredients = []string{}
	}
	if detail.Tips == nil {
		detail.Tips = []string{}
	}

	return detail
}

// compactStrings 去掉空白項目
func compactStrings(items []string) []string {
	var out []string
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func buildDetailPrompt(name string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Provide a complete recipe for \"%s\".\n", name))
	sb.WriteString("Return ONLY a single JSON object, no prose, no code fences, in this shape:\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"name\": \"dish name\",\n")
	sb.WriteString("  \"description\": \"one or two sentences\",\n")
	sb.WriteString("  \"servings\": \"2\",\n")
	sb.WriteString("  \"difficulty\": \"Easy\",\n")
	sb.WriteString("  \"time_estimate\": \"30 minutes\",\n")
	sb.WriteString("  \"ingredients\": [\"item with amount\"],\n")
	sb.WriteString("  \"steps\": [\"numbered-free step description\"],\n")
	sb.WriteString("  \"tips\": [\"optional tip\"]\n")
	sb.WriteString("}\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- difficulty must be one of Easy, Medium, Hard.\n")
	sb.WriteString("- steps must be detailed enough for a beginner.\n")
	sb.WriteString("- all fields are required; use \"\" or [] when unknown.\n")
	return sb.String()
}
