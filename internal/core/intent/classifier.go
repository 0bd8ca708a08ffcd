// Package intent turns a free-text chat message into a structured query
// intent plus extracted slots. Classification is a fixed rule chain over the
// lower-cased message; there is deliberately no statistical model behind it.
package intent

import (
	"regexp"
	"strings"

	"github.com/datakota/usaha-assistant/internal/core/domain"
)

// Count keywords take absolute priority: any hit classifies the message as a
// count query regardless of other patterns also matching.
var countKeywords = []string{
	"berapa", "jumlah", "total", "ada berapa",
	"hitung", "count", "banyak", "berapa banyak",
}

// Business-info trigger patterns, checked in order, whole-word matches only.
var businessInfoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bapa\s+itu\b`),
	regexp.MustCompile(`\bjelaskan\b`),
	regexp.MustCompile(`\bdeskripsikan\b`),
	regexp.MustCompile(`\binfo\s+tentang\b`),
	regexp.MustCompile(`\bceritakan\b`),
	regexp.MustCompile(`\bcari\s+info\b`),
}

// Classify returns exactly one intent tag for the message.
func Classify(message string) domain.ChatIntent {
	text := strings.ToLower(strings.TrimSpace(message))

	for _, kw := range countKeywords {
		if strings.Contains(text, kw) {
			return domain.IntentCount
		}
	}

	for _, pattern := range businessInfoPatterns {
		if pattern.MatchString(text) {
			return domain.IntentBusinessInfo
		}
	}

	return domain.IntentOutOfScope
}
