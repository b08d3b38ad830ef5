package chat

import (
	"regexp"
	"sort"
	"strings"
)

// 食材詞彙表：單字詞用正規表達式做整詞比對
var singleWordIngredients = []string{
	"chicken", "beef", "pork", "lamb", "turkey", "duck", "bacon", "ham",
	"sausage", "fish", "salmon", "tuna", "cod", "shrimp", "prawn", "crab",
	"lobster", "squid", "tofu", "egg", "eggs",
	"rice", "pasta", "noodle", "noodles", "spaghetti", "macaroni", "bread",
	"flour", "oats", "quinoa", "couscous", "tortilla", "potato", "potatoes",
	"onion", "onions", "garlic", "ginger", "carrot", "carrots", "celery",
	"broccoli", "cauliflower", "spinach", "kale", "lettuce", "cabbage",
	"tomato", "tomatoes", "cucumber", "zucchini", "eggplant", "pepper",
	"peppers", "mushroom", "mushrooms", "corn", "peas", "beans", "lentils",
	"chickpeas", "avocado", "pumpkin", "squash", "asparagus", "leek",
	"apple", "banana", "lemon", "lime", "orange", "mango", "pineapple",
	"strawberry", "blueberry", "coconut", "raisins",
	"milk", "cream", "butter", "cheese", "yogurt", "mozzarella", "parmesan",
	"cheddar", "feta",
	"salt", "sugar", "honey", "cinnamon", "cumin", "paprika", "turmeric",
	"basil", "oregano", "thyme", "rosemary", "cilantro", "parsley", "mint",
	"chili", "vinegar", "mayonnaise", "ketchup", "mustard",
}

// 多字詞片語：用子字串包含比對（不限定詞邊界），
// 補上單字詞切分會漏掉的組合詞
var multiWordIngredients = []string{
	"bell pepper", "olive oil", "soy sauce", "fish sauce", "oyster sauce",
	"sesame oil", "coconut milk", "sour cream", "cream cheese",
	"ground beef", "ground pork", "chicken breast", "chicken thigh",
	"green onion", "spring onion", "sweet potato", "brown sugar",
	"baking powder", "baking soda", "vanilla extract", "peanut butter",
	"tomato paste", "tomato sauce", "chili flakes", "curry powder",
	"black pepper", "red pepper",
}

var wordTokenPattern = regexp.MustCompile(`[a-z]+`)

// ExtractIngredients 在任意文字中找出已知食材，回傳去重後的小寫清單
// 單字詞以整詞比對、多字詞以子字串比對，兩者聯集；無命中回傳空集合
func ExtractIngredients(text string) []string {
	lower := strings.ToLower(text)
	found := make(map[string]struct{})

	// 單字詞：先斷詞再查表，避免 "rice" 在 "price" 中誤判
	tokens := wordTokenPattern.FindAllString(lower, -1)
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = struct{}{}
	}
	for _, word := range singleWordIngredients {
		if _, ok := tokenSet[word]; ok {
			found[word] = struct{}{}
		}
	}

	// 多字詞：直接做包含檢查
	for _, phrase := range multiWordIngredients {
		if strings.Contains(lower, phrase) {
			found[phrase] = struct{}{}
		}
	}

	result := make([]string, 0, len(found))
	for ing := range found {
		result = append(result, ing)
	}
	sort.Strings(result)
	return result
}
