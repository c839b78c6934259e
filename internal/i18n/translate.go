// Package i18n localizes text for the Arabic and English UI.
//
// Two lookups live here. Translate maps English compliance phrases coming
// back from the analysis backend to Arabic on a best-effort basis. Catalog
// holds the UI copy keyed by message id.
package i18n

import (
	"strings"

	"github.com/DukeRupert/aqdi/internal/locale"
)

type phrase struct {
	english string
	arabic  string
}

// phrases is scanned in order for substring matches, so order is behaviour:
// the first listed key contained in the text wins, even when a later key is
// longer or occurs earlier in the text.
var phrases = []phrase{
	// Compliance levels
	{"Excellent Compliance", "امتثال ممتاز"},
	{"Good Compliance", "امتثال جيد"},
	{"Moderate Compliance", "امتثال متوسط"},
	{"Poor Compliance", "امتثال ضعيف"},
	{"Critical Non-Compliance", "عدم امتثال حرج"},

	// Risk levels
	{"High Risk", "مخاطر عالية"},
	{"Medium Risk", "مخاطر متوسطة"},
	{"Low Risk", "مخاطر منخفضة"},

	// Common phrases
	{"Missing Required Clause", "بند مطلوب مفقود"},
	{"Legal Violation", "مخالفة قانونية"},
	{"Recommendation", "توصية"},
	{"Compliant", "متوافق"},
	{"Non-Compliant", "غير متوافق"},
	{"Contract Analysis Results", "نتائج تحليل العقد"},
	{"Overall Compliance Score", "درجة الامتثال الإجمالية"},
	{"Legal Issues Found", "المشكلات القانونية المكتشفة"},
	{"Missing Clauses", "البنود المفقودة"},
	{"Recommendations", "التوصيات"},
}

var exact = func() map[string]string {
	m := make(map[string]string, len(phrases))
	for _, p := range phrases {
		m[p.english] = p.arabic
	}
	return m
}()

// Translate returns text localized for l. Only Arabic translates. An exact
// phrase match returns the mapped phrase; otherwise the first table key
// found inside text has its first occurrence replaced. Unknown text is
// returned unchanged.
func Translate(text string, l locale.Locale) string {
	if text == "" || l != locale.Arabic {
		return text
	}

	if arabic, ok := exact[text]; ok {
		return arabic
	}

	for _, p := range phrases {
		if strings.Contains(text, p.english) {
			return strings.Replace(text, p.english, p.arabic, 1)
		}
	}

	return text
}
