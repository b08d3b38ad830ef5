package chat

import (
	"regexp"
	"strings"
)

const (
	sanitizerFallbackMessage = "I found some recipes! Check below."
	summarySuffix            = "Check below for more details."
	summaryThreshold         = 300
	minMessageLength         = 20
)

var (
	emptyFencePattern    = regexp.MustCompile("```(?:json)?\\s*```")
	jsonLeadInPattern    = regexp.MustCompile(`(?i)here(?:'s| is) the json:?\s*`)
	sanitizerSectionHeaderPattern = regexp.MustCompile(`(?i)^\s*#{0,3}\s*\**\s*(ingredients?|instructions?|directions?|steps?|method)\s*\**\s*:?\s*$`)
	sectionEndPattern    = regexp.MustCompile(`^[A-Z]`)
	bulletGroupPattern   = regexp.MustCompile(`(?m)^\s*[-*•]\s+.*$\n?`)
	numberedLinePattern  = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+.*$\n?`)
	jsonWordPattern      = regexp.MustCompile(`(?i)\bjson\b`)
	blankRunPattern      = regexp.MustCompile(`\n{3,}`)
	alnumPattern         = regexp.MustCompile(`[a-zA-Z0-9]`)
	openingLinePattern   = regexp.MustCompile(`(?i)(?:here's|here is|how about|let's)[^.!?\n]*[.!?]`)
)

// SanitizeResponse 清掉 LLM 回應中洩漏的 JSON、markdown 殘渣與食譜內文，
// 只留下對話性文字。步驟順序有意義：JSON 移除要先於段落剝除，長度回退
// 與摘要必須最後做，才會作用在清完的長度上
func SanitizeResponse(responseText, consumedBlock string) string {
	text := responseText

	// 1. 移除已被結構化解析消化掉的 JSON 區塊
	if consumedBlock != "" {
		text = strings.Replace(text, consumedBlock, "", 1)
	}

	// 2. 清掉空圍欄與 "Here is the JSON:" 之類的引導句
	text = emptyFencePattern.ReplaceAllString(text, "")
	text = jsonLeadInPattern.ReplaceAllString(text, "")

	// 3. 剝掉 Ingredients / Instructions / Directions / Steps / Method
	//    整段：標題行加上直到下一個大寫行或字串結尾的內容
	text = stripRecipeSections(text)

	// 4. 殘留的列點與編號行群組（食譜內文，完整內容另行按需提供）
	text = bulletGroupPattern.ReplaceAllString(text, "")
	text = numberedLinePattern.ReplaceAllString(text, "")

	// 5. 殘留的 "json" 字樣換成 "recipe data"，反引號全部去掉
	text = jsonWordPattern.ReplaceAllString(text, "recipe data")
	text = strings.ReplaceAll(text, "`", "")

	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	// 6. 結果太短或沒有任何內容時用固定句子
	if len(text) < minMessageLength || !alnumPattern.MatchString(text) {
		return sanitizerFallbackMessage
	}

	// 7. 太長時嘗試縮成第一個開場句
	if len(text) > summaryThreshold {
		if opening := openingLinePattern.FindString(text); opening != "" {
			return strings.TrimSpace(opening) + " " + summarySuffix
		}
	}

	return text
}

// stripRecipeSections 逐行剝掉食譜段落：遇到段落標題行就開始跳過，
// 直到下一個大寫開頭的行才恢復輸出
func stripRecipeSections(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	skipping := false
	for _, line := range lines {
		if sanitizerSectionHeaderPattern.MatchString(line) {
			skipping = true
			continue
		}
		if skipping {
			if !sectionEndPattern.MatchString(line) {
				continue
			}
			skipping = false
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
