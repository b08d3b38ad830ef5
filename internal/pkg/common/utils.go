package common

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

const maxSlugLength = 50

// SlugifyRecipeName 由食譜名稱產生確定性 id：小寫、ASCII [a-z0-9_]、最長 50 字元
// 同名必得同 id，供 upsert 冪等使用
func SlugifyRecipeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var out []rune
	var lastUnderscore bool
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, r)
			lastUnderscore = false
		case r >= '0' && r <= '9':
			if len(out) > 0 {
				out = append(out, r)
				lastUnderscore = false
			}
		default:
			if len(out) > 0 && !lastUnderscore {
				out = append(out, '_')
				lastUnderscore = true
			}
		}
		if len(out) >= maxSlugLength {
			break
		}
	}
	result := strings.Trim(string(out), "_")
	if len(result) > maxSlugLength {
		result = strings.Trim(result[:maxSlugLength], "_")
	}
	return result
}
