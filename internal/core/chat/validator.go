package chat

import (
	"regexp"
	"strings"
)

// 永遠不是菜名的開頭詞
var recipeBlockWords = []string{
	"click", "view", "read", "here", "link", "website", "youtube",
	"video", "welcome", "hello", "hi", "thank", "sorry", "goodbye",
}

// 烹飪動作動詞：出現在句首且後面還有非括號、非破折號的字詞時，
// 判定為指令句而不是菜名
var cookingVerbs = []string{
	"bake", "boil", "fry", "roast", "grill", "steam", "chop", "mix",
	"add", "serve", "season", "taste", "stir", "heat", "simmer", "whisk",
	"saute", "sauté", "blend", "pour", "slice", "dice", "marinate",
	"preheat", "combine", "drain", "garnish",
}

// 食物關鍵字：蛋白質、澱粉、蔬果、乳製品、香料、各地菜名與料理風格形容詞
var foodKeywordPattern = regexp.MustCompile(`(?i)\b(chicken|beef|pork|lamb|turkey|duck|bacon|ham|sausage|fish|salmon|tuna|shrimp|prawn|crab|lobster|squid|tofu|egg|omelet|omelette|rice|pasta|noodle|spaghetti|lasagna|macaroni|risotto|paella|bread|toast|sandwich|burger|pizza|taco|burrito|quesadilla|wrap|pie|tart|cake|cookie|brownie|muffin|pancake|waffle|crepe|pudding|potato|onion|garlic|carrot|broccoli|spinach|mushroom|tomato|pepper|corn|bean|lentil|chickpea|avocado|pumpkin|salad|soup|stew|curry|stir[- ]?fry|casserole|roast|bbq|barbecue|kebab|skewer|dumpling|ramen|pho|sushi|teriyaki|tempura|adobo|biryani|tikka|masala|falafel|hummus|gnocchi|ravioli|carbonara|bolognese|alfredo|pesto|chowder|gumbo|jambalaya|goulash|schnitzel|paprikash|enchilada|fajita|ceviche|gazpacho|bruschetta|frittata|quiche|smoothie|parfait|cheese|cheesecake|yogurt|butter|cream|milk|chocolate|vanilla|cinnamon|ginger|honey|glazed|baked|grilled|fried|roasted|steamed|braised|smoked|spicy|creamy|crispy)\b`)

// 菜名形狀的寬鬆回退：大寫開頭接小寫，如 "Ratatouille"
var titleShapePattern = regexp.MustCompile(`^[A-Z][a-z]`)

// IsValidRecipeName 判斷候選字串是否像菜名（而非食材、指令或段落標題）
// 各檢查為硬性關卡，任一失敗即拒絕；在精準與召回間折衷，
// 不要求每個地方菜名都列進關鍵字表
func IsValidRecipeName(candidate string) bool {
	text := strings.TrimSpace(candidate)
	if len(text) < 3 || len(text) > 80 {
		return false
	}

	lower := strings.ToLower(text)
	for _, blocked := range recipeBlockWords {
		if lower == blocked || strings.HasPrefix(lower, blocked+" ") {
			return false
		}
	}

	if isInstructionLine(text) {
		return false
	}

	if foodKeywordPattern.MatchString(text) {
		return true
	}

	// 寬鬆回退：看起來像專有名詞式的菜名就放行
	words := strings.Fields(text)
	if titleShapePattern.MatchString(text) && len(text) > 5 && len(text) < 80 && len(words) <= 8 {
		return true
	}

	return false
}

// isInstructionLine 句首是烹飪動詞且尾隨非括號、非破折號字詞
func isInstructionLine(text string) bool {
	words := strings.Fields(text)
	if len(words) < 2 {
		return false
	}
	first := strings.ToLower(strings.Trim(words[0], ".,:;!"))
	verb := false
	for _, v := range cookingVerbs {
		if first == v {
			verb = true
			break
		}
	}
	if !verb {
		return false
	}
	// "Baked (casserole style)" 或 "Roast - family size" 之類仍算標題
	rest := strings.TrimSpace(text[len(words[0]):])
	if strings.HasPrefix(rest, "(") || strings.HasPrefix(rest, "-") || strings.HasPrefix(rest, "–") {
		return false
	}
	return true
}
