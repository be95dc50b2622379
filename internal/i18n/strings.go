package i18n

import "github.com/atlasborder/site/internal/atlas"

// Strings are the interface labels shared by every page.
type Strings struct {
	SiteName    string `json:"site_name"`
	SiteTagline string `json:"site_tagline"`
	NavHome     string `json:"nav_home"`
	NavMove     string `json:"nav_move"`
	NavVerify   string `json:"nav_verify"`
	NavWC       string `json:"nav_wc"`
	Disclaimer  string `json:"disclaimer"`
	Open        string `json:"open"`
}

var tables = map[atlas.Lang]Strings{
	atlas.LangEN: {
		SiteName:    "AtlasBorder",
		SiteTagline: "Calm, practical tools for cross‑border decisions.",
		NavHome:     "Home",
		NavMove:     "Immigration / Relocation",
		NavVerify:   "Application Validation",
		NavWC:       "WorldCup 2026 Planner",
		Disclaimer:  "Disclaimer: informational only, not legal advice. Always verify with official sources.",
		Open:        "Open",
	},
	atlas.LangAR: {
		SiteName:    "أطلس بوردر",
		SiteTagline: "أدوات هادئة وعملية لقرارات السفر والانتقال عبر الحدود.",
		NavHome:     "الرئيسية",
		NavMove:     "الهجرة / الانتقال",
		NavVerify:   "فحص الطلب قبل الإرسال",
		NavWC:       "مخطط كأس العالم 2026",
		Disclaimer:  "تنبيه: معلومات عامة وليست استشارة قانونية. تحقق دائماً من المصادر الرسمية.",
		Open:        "افتح",
	},
}

// For returns the string table for lang, English for anything unknown.
func For(lang atlas.Lang) Strings {
	if s, ok := tables[lang]; ok {
		return s
	}
	return tables[atlas.LangEN]
}
