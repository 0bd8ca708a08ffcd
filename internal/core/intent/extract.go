package intent

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/datakota/usaha-assistant/internal/core/domain"
)

// Name-extraction patterns ordered by specificity; the first match wins and
// its remainder is the candidate business name.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bapa\s+itu\s+(.+)`),
	regexp.MustCompile(`(?i)\bjelaskan\s+tentang\s+(.+)`),
	regexp.MustCompile(`(?i)\bjelaskan\s+(.+)`),
	regexp.MustCompile(`(?i)\bdeskripsikan\s+(.+)`),
	regexp.MustCompile(`(?i)\binfo\s+tentang\s+(.+)`),
	regexp.MustCompile(`(?i)\bceritakan\s+tentang\s+(.+)`),
	regexp.MustCompile(`(?i)\bceritakan\s+(.+)`),
	regexp.MustCompile(`(?i)\bcari\s+info\s+(.+)`),
}

var noiseWordPrefix = regexp.MustCompile(`(?i)^(usaha|toko|warung|tentang)\s+`)

// The closed district list is a compatibility contract; values are the
// canonical title-cased names surfaced in responses.
var knownDistricts = []string{
	"Balikpapan Timur",
	"Balikpapan Selatan",
	"Balikpapan Utara",
	"Balikpapan Barat",
	"Balikpapan Tengah",
	"Balikpapan Kota",
}

const cityKeyword = "balikpapan"
const canonicalRegency = "Balikpapan"

// ExtractBusinessName pulls the candidate business name out of a
// business-info message. The boolean is false when no usable name remains
// after trimming; that is an extraction failure, not an out-of-scope message.
func ExtractBusinessName(message string) (string, bool) {
	text := strings.TrimSpace(message)
	text = strings.TrimRight(text, "?!.")

	for _, pattern := range namePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		name := strings.TrimSpace(match[1])
		name = noiseWordPrefix.ReplaceAllString(name, "")
		if utf8.RuneCountInString(name) > 2 {
			return name, true
		}
	}
	return "", false
}

// ExtractCountFilter pulls optional district/regency/status slots out of a
// count message. A matched district disables regency extraction.
func ExtractCountFilter(message string) domain.CountFilter {
	text := strings.ToLower(message)

	var filter domain.CountFilter
	filter.District = extractDistrict(text)
	if filter.District == "" {
		filter.Regency = extractRegency(text)
	}
	filter.Status = extractStatus(text)
	return filter
}

func extractDistrict(text string) string {
	for _, district := range knownDistricts {
		if strings.Contains(text, strings.ToLower(district)) {
			return district
		}
	}
	return ""
}

func extractRegency(text string) string {
	if strings.Contains(text, cityKeyword) {
		return canonicalRegency
	}
	return ""
}

func extractStatus(text string) string {
	switch {
	case strings.Contains(text, "aktif") && !strings.Contains(text, "tidak") && !strings.Contains(text, "non"):
		return "aktif"
	case strings.Contains(text, "nonaktif") || strings.Contains(text, "tidak aktif"):
		return "nonaktif"
	default:
		return ""
	}
}
