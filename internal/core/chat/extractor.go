package chat

import (
	"regexp"
	"strings"
)

// 擷取策略依序嘗試；bold 與 prefixed 永遠執行並互相補充，
// numbered、header 與兩個 fallback 只在前面全數落空時才跑
type extractionStrategy struct {
	name      string
	alwaysRun bool
	extract   func(text string) []string
}

var extractionStrategies = []extractionStrategy{
	{name: "bold", alwaysRun: true, extract: extractBoldTitles},
	{name: "numbered", alwaysRun: false, extract: extractNumberedTitles},
	{name: "prefixed", alwaysRun: true, extract: extractPrefixedTitles},
	{name: "header", alwaysRun: false, extract: extractHeaderTitles},
	{name: "line_scan", alwaysRun: false, extract: extractLineScanTitles},
	{name: "colon_quote", alwaysRun: false, extract: extractColonQuoteTitles},
}

var (
	boldPattern        = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	numberedPattern    = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+([A-Z][^.\n]{4,79})`)
	prefixedPattern    = regexp.MustCompile(`(?im)^(?:recipe name|recipe|dish|try|make|here's)\s*:\s*([A-Z][^\n]{2,79})`)
	headerPattern      = regexp.MustCompile(`(?m)^#{1,3}\s+(.+)$`)
	colonQuotePattern  = regexp.MustCompile(`(?i)\b(?:recipe|dish|meal|food|try|make|here's)\s*:\s*([A-Z][A-Za-z0-9'&\- ]{2,79})`)
	quotedTitlePattern = regexp.MustCompile(`"([A-Z][^"\n]{2,79})"`)

	// 段落標題詞（Ingredients:, Instructions 等），不是菜名
	sectionHeaderPattern = regexp.MustCompile(`(?i)^\s*(ingredients?|instructions?|directions?|steps?|method|tips?|notes?|nutrition|preparation|equipment|servings?|variations?)\b`)

	// 指令句標記：出現就代表這行在講怎麼做，不是標題
	instructionMarkerPattern = regexp.MustCompile(`(?i)\b(in a |until |for \d+ (minutes?|mins?|seconds?|hours?)|al dente|over (medium|high|low) heat|to taste|set aside|drain and)\b`)

	digitDotPattern = regexp.MustCompile(`\d\.`)

	// 單位與教學用語，fallback 行掃描的拒絕名單
	lineScanDenyPattern = regexp.MustCompile(`(?i)\b(cups?|tablespoons?|teaspoons?|tbsp|tsp|grams?|ounces?|oz|ml|liters?|pounds?|lbs?|degrees|°|preheat|meanwhile|first|second|third|then|next|finally|step \d)\b`)

	leadingMarkerPattern = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)
	leadingLabelPattern  = regexp.MustCompile(`(?i)^(?:recipe name|recipe|ingredients?|dish|title)\s*:\s*`)
)

// ExtractRecipesFromResponse 從 LLM 回應全文擷取經驗證的菜名清單，
// 保持出現順序並以小寫鍵去重
func ExtractRecipesFromResponse(text string) []string {
	var results []string
	seen := make(map[string]struct{})

	for _, strategy := range extractionStrategies {
		if !strategy.alwaysRun && len(results) > 0 {
			continue
		}
		for _, candidate := range strategy.extract(text) {
			name := CleanRecipeName(candidate)
			if !IsValidRecipeName(name) {
				continue
			}
			key := strings.ToLower(name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			results = append(results, name)
		}
	}

	return results
}

// CleanRecipeName 去掉候選字串上的序號、標籤詞、粗體記號與引號
func CleanRecipeName(candidate string) string {
	name := strings.TrimSpace(candidate)
	name = leadingMarkerPattern.ReplaceAllString(name, "")
	name = leadingLabelPattern.ReplaceAllString(name, "")
	name = strings.Trim(name, "*")
	name = strings.Trim(name, `"'`)
	name = strings.TrimSuffix(strings.TrimSpace(name), ":")
	return strings.TrimSpace(name)
}

// extractBoldTitles 收集 **...** 內容，略過段落標題與帶編號的片段
func extractBoldTitles(text string) []string {
	var out []string
	for _, m := range boldPattern.FindAllStringSubmatch(text, -1) {
		inner := strings.TrimSpace(m[1])
		if sectionHeaderPattern.MatchString(inner) || digitDotPattern.MatchString(inner) {
			continue
		}
		out = append(out, inner)
	}
	return out
}

// extractNumberedTitles 擷取 "1. Xxx" / "2) Xxx" 開頭的標題行
func extractNumberedTitles(text string) []string {
	var out []string
	for _, m := range numberedPattern.FindAllStringSubmatch(text, -1) {
		phrase := strings.TrimSpace(m[1])
		if sectionHeaderPattern.MatchString(phrase) || instructionMarkerPattern.MatchString(phrase) {
			continue
		}
		if startsWithCookingVerb(phrase) {
			continue
		}
		out = append(out, phrase)
	}
	return out
}

// extractPrefixedTitles 擷取 "Recipe:", "Dish:", "Try:" 等前綴後的標題
func extractPrefixedTitles(text string) []string {
	var out []string
	for _, m := range prefixedPattern.FindAllStringSubmatch(text, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

// extractHeaderTitles 擷取 markdown 標題行，略過段落標題
func extractHeaderTitles(text string) []string {
	var out []string
	for _, m := range headerPattern.FindAllStringSubmatch(text, -1) {
		inner := strings.TrimSpace(m[1])
		if sectionHeaderPattern.MatchString(inner) {
			continue
		}
		out = append(out, inner)
	}
	return out
}

// extractLineScanTitles 逐行掃描的最後防線：只接受帶強烈食物指標的行
func extractLineScanTitles(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 3 || len(line) > 100 {
			continue
		}
		if sectionHeaderPattern.MatchString(line) ||
			instructionMarkerPattern.MatchString(line) ||
			lineScanDenyPattern.MatchString(line) {
			continue
		}
		if isAllCaps(line) || startsWithCookingVerb(line) {
			continue
		}
		if !foodKeywordPattern.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// extractColonQuoteTitles 冒號前綴與引號包裹的大寫片語
func extractColonQuoteTitles(text string) []string {
	var out []string
	for _, m := range colonQuotePattern.FindAllStringSubmatch(text, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	for _, m := range quotedTitlePattern.FindAllStringSubmatch(text, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

func startsWithCookingVerb(text string) bool {
	words := strings.Fields(text)
	if len(words) == 0 {
		return false
	}
	first := strings.ToLower(strings.Trim(words[0], ".,:;!"))
	for _, v := range cookingVerbs {
		if first == v {
			return true
		}
	}
	return false
}

func isAllCaps(text string) bool {
	hasLetter := false
	for _, r := range text {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}
