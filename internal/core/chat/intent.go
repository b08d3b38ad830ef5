package chat

import (
	"strings"

	"recipe-chatbot/internal/pkg/common"
)

// 意圖判定對小寫訊息做比對：片語清單走包含檢查，關鍵字清單走整詞比對，
// 清單為固定設定資料
// 判定順序由 Classify 決定：Developer → Identity → Gratitude → OffTopic → OnTopic

var developerPhrases = []string{
	"who made this app",
	"who made you",
	"who built this app",
	"who built you",
	"who created this app",
	"who created you",
	"who developed this app",
	"who developed you",
	"who is your developer",
	"who is your creator",
	"who wrote this app",
	"who programmed you",
	"made by whom",
	"your developer",
	"your creator",
}

var identityPhrases = []string{
	"who are you",
	"what are you",
	"what is this app",
	"what is recipe chatbot",
	"what's this app",
	"introduce yourself",
	"tell me about yourself",
	"your purpose",
	"what do you do",
	"what can you do",
	"what is your name",
}

var gratitudePhrases = []string{
	"thank you",
	"thanks",
	"thx",
	"appreciate it",
	"appreciate you",
	"you're the best",
	"you are the best",
	"you're awesome",
	"you are awesome",
	"you're amazing",
	"you are amazing",
	"great job",
	"well done",
	"love this app",
	"love you",
	"so helpful",
	"very helpful",
}

// 烹飪領域關鍵字：小集合，同時供 off-topic 覆寫與感謝訊息 tie-break 使用
var cookingKeywords = []string{
	"cook", "cooking", "recipe", "food", "meal", "dish", "ingredient",
	"kitchen", "bake", "baking", "fry", "grill", "roast", "boil",
	"chicken", "beef", "pork", "fish", "shrimp", "egg", "tofu",
	"rice", "pasta", "noodle", "bread", "soup", "salad", "sauce",
	"dinner", "lunch", "breakfast", "snack", "dessert", "eat",
}

// 離題關鍵字分類表：涵蓋政治、宗教、運動、遊戲、科技、金融、教育、
// 健康醫療、旅遊、感情、新聞、購物、天氣與雜項
var offTopicKeywords = []string{
	// politics
	"politics", "election", "president", "government", "congress", "senate",
	"democrat", "republican", "policy", "vote", "campaign",
	// religion
	"religion", "church", "bible", "quran", "prayer", "god",
	// sports
	"football", "soccer", "basketball", "baseball", "tennis", "golf",
	"nba", "nfl", "olympics", "world cup", "championship",
	// gaming
	"video game", "gaming", "playstation", "xbox", "nintendo", "fortnite",
	"minecraft", "league of legends",
	// tech
	"programming", "software", "computer", "smartphone", "laptop",
	"technology", "coding", "javascript", "python", "artificial intelligence",
	"crypto", "bitcoin",
	// finance
	"stock market", "investment", "mortgage", "loan", "insurance",
	"banking", "taxes", "salary",
	// education
	"homework", "exam", "university", "college", "school", "math",
	"physics", "chemistry", "history class",
	// fitness / medical
	"workout", "gym", "medicine", "doctor", "hospital", "surgery",
	"therapy", "pharmacy", "vaccine",
	// travel
	"flight", "hotel", "vacation", "tourism", "passport", "airport",
	// relationships
	"dating", "girlfriend", "boyfriend", "marriage", "divorce", "breakup",
	// news
	"breaking news", "headline", "journalist", "press conference",
	// shopping
	"shopping mall", "discount code", "black friday", "online store",
	// weather
	"weather", "forecast", "hurricane", "snowstorm",
	// misc
	"horoscope", "astrology", "lottery", "celebrity", "movie", "concert",
	"netflix", "tiktok",
}

// matchCount 計算片語清單在訊息中命中的數量
func matchCount(lower string, phrases []string) int {
	count := 0
	for _, phrase := range phrases {
		if strings.Contains(lower, phrase) {
			count++
		}
	}
	return count
}

// tokenizeMessage 把訊息斷成整詞集合
// 關鍵字比對走整詞查表而不是子字串，"eat" 才不會在 "weather" 裡誤中
func tokenizeMessage(lower string) map[string]struct{} {
	tokens := wordTokenPattern.FindAllString(lower, -1)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

// matchKeywordCount 計算關鍵字清單命中數：單字詞查整詞集合，多字詞做包含檢查
func matchKeywordCount(lower string, tokens map[string]struct{}, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.ContainsRune(kw, ' ') {
			if strings.Contains(lower, kw) {
				count++
			}
			continue
		}
		if _, ok := tokens[kw]; ok {
			count++
		}
	}
	return count
}

// containsAny 檢查訊息是否包含清單中任一片語
func containsAny(lower string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// IsDeveloperQuestion 用戶在問這個 app 是誰做的
func IsDeveloperQuestion(message string) bool {
	return containsAny(strings.ToLower(message), developerPhrases)
}

// IsIdentityQuestion 用戶在問助手是誰／能做什麼
func IsIdentityQuestion(message string) bool {
	return containsAny(strings.ToLower(message), identityPhrases)
}

// IsGratitude 感謝或稱讚訊息
// 訊息同時帶烹飪關鍵字時做 tie-break：感謝片語命中數需達烹飪關鍵字
// 命中數的兩倍才算純感謝，否則視為接著問新的烹飪問題
func IsGratitude(message string) bool {
	lower := strings.ToLower(message)
	gratitudeCount := matchCount(lower, gratitudePhrases)
	if gratitudeCount == 0 {
		return false
	}
	cookingCount := matchKeywordCount(lower, tokenizeMessage(lower), cookingKeywords)
	if cookingCount == 0 {
		return true
	}
	return gratitudeCount >= 2*cookingCount
}

// IsOffTopic 訊息落在離題分類表內
// 先檢查烹飪關鍵字：只要出現任一烹飪詞就視為在題，覆寫離題判定，
// 避免正常烹飪問題因順帶提到 "health"、"technology" 之類字眼被誤攔
func IsOffTopic(message string) bool {
	lower := strings.ToLower(message)
	tokens := tokenizeMessage(lower)
	if matchKeywordCount(lower, tokens, cookingKeywords) > 0 {
		return false
	}
	return matchKeywordCount(lower, tokens, offTopicKeywords) > 0
}

// Classify 依固定優先序分類訊息，先命中者為準
func Classify(message string) common.Classification {
	switch {
	case IsDeveloperQuestion(message):
		return common.ClassDeveloper
	case IsIdentityQuestion(message):
		return common.ClassIdentity
	case IsGratitude(message):
		return common.ClassGratitude
	case IsOffTopic(message):
		return common.ClassOffTopic
	default:
		return common.ClassOnTopic
	}
}
