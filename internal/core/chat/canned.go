package chat

import (
	"fmt"
	"math/rand"
	"strings"
)

// 各分類的罐頭回覆池；回覆隨機挑選，把話題導回烹飪

var developerReplies = []string{
	"This recipe chatbot was built by the Recipe Chatbot team. But enough about us — what are you cooking today?",
	"A small team of food-loving developers put me together. Now, shall we find you something delicious to make?",
}

var identityReplies = []string{
	"I'm your cooking assistant! Tell me what ingredients you have and I'll suggest recipes you can make.",
	"I'm a recipe chatbot — I help you figure out what to cook. Try telling me what's in your fridge!",
}

var gratitudeReplies = []string{
	"You're very welcome! Happy cooking, and come back whenever you need a new recipe idea.",
	"Glad I could help! Let me know when you're ready for your next dish.",
	"Anytime! Cooking is more fun together. What's next on the menu?",
}

var offTopicReplies = []string{
	"That's a bit outside my kitchen! I'm best at cooking questions — tell me what ingredients you have and I'll suggest something tasty.",
	"I'll have to pass on that one, I only know my way around food. What would you like to cook today?",
	"My expertise ends at the kitchen door! How about we find you a great recipe instead?",
}

var llmFallbackReplies = []string{
	"I'm having trouble reaching my recipe brain right now, but here's an idea: try a simple stir-fry or soup with %s!",
	"My kitchen connection is a little slow at the moment. With %s you could make a quick fried rice or a hearty stew!",
}

var llmFallbackGenericReplies = []string{
	"I'm having trouble reaching my recipe brain right now. How about a classic comfort dish — pasta, fried rice, or a simple soup?",
	"My kitchen connection is a little slow at the moment. A one-pan chicken and rice dish is always a safe bet!",
}

func pickReply(pool []string) string {
	return pool[rand.Intn(len(pool))]
}

// ComposeLLMFallback 組出 LLM 失敗時的罐頭回覆，
// 有抓到食材時帶進句子裡
func ComposeLLMFallback(ingredients []string) string {
	if len(ingredients) == 0 {
		return pickReply(llmFallbackGenericReplies)
	}
	return fmt.Sprintf(pickReply(llmFallbackReplies), strings.Join(ingredients, " and "))
}
