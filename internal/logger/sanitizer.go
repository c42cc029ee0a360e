package logger

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Sanitizer 負責過濾日誌中的敏感資訊
//
// 限制說明：
//   - SanitizeArgs() 僅對「敏感 key 的 value」進行遮罩（如 credential、password 等）
//   - 若敏感資料藏在非敏感 key 的 value 中，不會被遮罩
//
// Endpoint credentials pass through this layer on every registry and
// remote-backend log line; they must never reach a handler unmasked.
type Sanitizer struct {
	mu       sync.RWMutex
	patterns []SanitizeRule
}

// SanitizeRule 單一過濾規則
type SanitizeRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// NewSanitizer 建立預設 sanitizer
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		patterns: defaultSanitizeRules(),
	}
}

// defaultSanitizeRules 回傳預設過濾規則
func defaultSanitizeRules() []SanitizeRule {
	return []SanitizeRule{
		// 密碼與憑證
		{regexp.MustCompile(`(?i)password=\S+`), "password=***"},
		{regexp.MustCompile(`(?i)credential=\S+`), "credential=***"},
		{regexp.MustCompile(`(?i)token=\S+`), "token=***"},
		{regexp.MustCompile(`(?i)basic\s+\S+`), "basic ***"},

		// 使用者家目錄
		{regexp.MustCompile(`(?i)[A-Z]:\\Users\\[^\\]+`), "***:\\Users\\***"},
		{regexp.MustCompile(`/home/[^/]+`), "/home/***"},
		{regexp.MustCompile(`/Users/[^/]+`), "/Users/***"},
	}
}

// Sanitize sanitizes a string by applying all patterns
func (s *Sanitizer) Sanitize(input string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := input
	for _, rule := range s.patterns {
		result = rule.Pattern.ReplaceAllString(result, rule.Replacement)
	}
	return result
}

// SanitizeArgs sanitizes key-value logging arguments
func (s *Sanitizer) SanitizeArgs(args []any) []any {
	if len(args) == 0 {
		return args
	}

	result := make([]any, len(args))
	copy(result, args)

	for i := 0; i < len(result)-1; i += 2 {
		key, ok := result[i].(string)
		if !ok {
			continue
		}

		if isSensitiveKey(key) {
			switch v := result[i+1].(type) {
			case string:
				result[i+1] = maskValue(v)
			case error:
				result[i+1] = maskValue(v.Error())
			}
		}
	}

	return result
}

// isSensitiveKey 判斷鍵名是否為敏感鍵
func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, sk := range []string{"password", "credential", "token", "secret", "auth"} {
		if strings.Contains(lowerKey, sk) {
			return true
		}
	}
	return false
}

// maskValue 遮蔽值（保留首字元）
func maskValue(value string) string {
	if len(value) <= 2 {
		return "***"
	}
	return fmt.Sprintf("%s***", string(value[0]))
}

// AddRule 新增自訂過濾規則
func (s *Sanitizer) AddRule(pattern string, replacement string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns = append(s.patterns, SanitizeRule{Pattern: re, Replacement: replacement})
	return nil
}
