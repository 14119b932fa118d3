package book

import (
	"strings"

	"github.com/lib/pq"
)

// categoryTranslations maps common English category names to Arabic, so
// records promoted from Arabic-language searches carry localized categories.
var categoryTranslations = map[string]string{
	"fiction":           "الخيال",
	"literature":        "الأدب",
	"novel":             "الرواية",
	"poetry":            "الشعر",
	"drama":             "المسرح",
	"short stories":     "القصص القصيرة",
	"arabic literature": "الأدب العربي",
	"biography":         "السيرة الذاتية",
	"history":           "التاريخ",
	"philosophy":        "الفلسفة",
	"religion":          "الدين",
	"science":           "العلوم",
	"medicine":          "الطب",
	"psychology":        "علم النفس",
	"art":               "الفن",
	"music":             "الموسيقى",
	"education":         "التعليم",
	"business":          "الأعمال",
	"economics":         "الاقتصاد",
	"technology":        "التكنولوجيا",
	"children":          "الأطفال",
	"romance":           "الرومانسية",
	"adventure":         "المغامرة",
	"science fiction":   "الخيال العلمي",
	"travel":            "السفر",
	"health":            "الصحة",
	"politics":          "السياسة",
}

const maxCategories = 5

// NormalizeCategories cleans up the category tags a catalog returned: trims
// and collapses whitespace, drops case-insensitive duplicates, translates
// known names when the record is Arabic, and caps the list.
func NormalizeCategories(categories []string, language string) pq.StringArray {
	out := make(pq.StringArray, 0, len(categories))
	seen := map[string]bool{}
	for _, c := range categories {
		c = strings.Join(strings.Fields(c), " ")
		if c == "" {
			continue
		}
		if language == "ar" {
			if ar, ok := categoryTranslations[strings.ToLower(c)]; ok {
				c = ar
			}
		}
		key := strings.ToLower(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
		if len(out) == maxCategories {
			break
		}
	}
	return out
}
