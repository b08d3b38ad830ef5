package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ParseJSON 解析 JSON 字符串到結構體
func ParseJSON(data string, v interface{}) error {
	return decodeJSON(strings.NewReader(data), v)
}

// ParseJSONBytes 解析 JSON 位元組切片到結構體
func ParseJSONBytes(data []byte, v interface{}) error {
	return decodeJSON(bytes.NewReader(data), v)
}

func decodeJSON(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := dec.Decode(v); err != nil {
		return err
	}

	// 確保沒有多餘資料
	for {
		t, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		// 若讀到額外 token，視為錯誤
		if t != nil {
			return fmt.Errorf("unexpected extra JSON data")
		}
	}
}

var (
	unquotedKeyPattern   = regexp.MustCompile(`([{\[,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
	whitespaceRunPattern = regexp.MustCompile(`\s+`)
)

// QuoteJSONKeys 將未加雙引號的鍵補上雙引號
func QuoteJSONKeys(raw string) string {
	return unquotedKeyPattern.ReplaceAllString(raw, `$1"$2":`)
}

// StripTrailingCommas 移除 } ] 前的多餘逗號
func StripTrailingCommas(raw string) string {
	return trailingCommaPattern.ReplaceAllString(raw, `$1`)
}

// SafeParseJSON 寬鬆解析 LLM 產生的 JSON：先原樣解析，失敗後逐步修補
// （去尾逗號、壓縮空白、補鍵引號）再試；全部失敗時回傳最後一個錯誤
func SafeParseJSON(raw string, v interface{}) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("empty JSON input")
	}

	if err := ParseJSON(raw, v); err == nil {
		return nil
	}

	cleaned := StripTrailingCommas(raw)
	cleaned = whitespaceRunPattern.ReplaceAllString(cleaned, " ")
	if err := ParseJSON(cleaned, v); err == nil {
		return nil
	}

	cleaned = QuoteJSONKeys(cleaned)
	return ParseJSON(cleaned, v)
}

// ToJSON 將結構體轉換為 JSON 字符串
func ToJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
