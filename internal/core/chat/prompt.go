package chat

import (
	"fmt"
	"strings"

	"recipe-chatbot/internal/pkg/common"
)

// BuildSystemPrompt 組出 system prompt：角色設定、輸出格式要求，
// 以及（若有）用戶個人化脈絡。prompt 內容是設定細節，不是邏輯
func BuildSystemPrompt(profile *common.UserProfile) string {
	var sb strings.Builder
	sb.WriteString("You are a friendly cooking assistant for a recipe chatbot. ")
	sb.WriteString("Answer cooking questions conversationally and suggest concrete dishes.\n\n")
	sb.WriteString("After your conversational reply, append a fenced JSON block of the form:\n")
	sb.WriteString("```json\n")
	sb.WriteString(`{"recipes":[{"title":"Dish Name","servings":"2","difficulty":"Easy"}]}`)
	sb.WriteString("\n```\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- difficulty must be one of Easy, Medium, Hard.\n")
	sb.WriteString("- List only dishes you actually mentioned in your reply.\n")
	sb.WriteString("- Keep the conversational part short; do not repeat full ingredient lists or steps in it.\n")
	sb.WriteString("- Omit the JSON block entirely when you are not suggesting any dish.\n")

	if profile != nil {
		sb.WriteString("\nUser context (adapt your suggestions accordingly):\n")
		if profile.IsVegan {
			sb.WriteString("- The user is vegan.\n")
		}
		if profile.IsDiabetic {
			sb.WriteString("- The user is diabetic; prefer low-sugar dishes.\n")
		}
		if profile.IsOnDiet {
			sb.WriteString("- The user is on a diet; prefer lighter dishes.\n")
		}
		if len(profile.Allergies) > 0 {
			sb.WriteString(fmt.Sprintf("- Allergies, never use these: %s.\n", strings.Join(profile.Allergies, ", ")))
		}
		if len(profile.DislikedIngredients) > 0 {
			sb.WriteString(fmt.Sprintf("- Disliked ingredients: %s.\n", strings.Join(profile.DislikedIngredients, ", ")))
		}
		if profile.PrefersSpicy {
			sb.WriteString("- The user enjoys spicy food.\n")
		}
		if profile.PrefersSalty {
			sb.WriteString("- The user prefers savory flavors.\n")
		}
		if profile.Nationality != "" {
			sb.WriteString(fmt.Sprintf("- The user's nationality is %s; regional dishes are welcome.\n", profile.Nationality))
		}
	}

	return sb.String()
}
