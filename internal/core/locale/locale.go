// Package locale provides the pure locale model and resolution algorithm.
// It has no I/O; persistence and transport live in the services layer.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a supported language tag. The set is closed per deployment;
// anything outside it is invalid and rejected by Valid.
type Locale string

// Supported locales for this deployment
const (
	English Locale = "en"
	Chinese Locale = "zh"
)

// Default is the fallback when no signal yields a supported locale
const Default = English

// Supported returns the closed locale set in priority order
func Supported() []Locale { return []Locale{English, Chinese} }

// Valid reports whether l is in the supported set
func Valid(l Locale) bool {
	for _, s := range Supported() {
		if l == s {
			return true
		}
	}
	return false
}

// Parse normalizes a raw tag like "zh_CN.UTF-8" or "en-US" to a supported
// Locale. ok is false when the base language is outside the supported set
func Parse(raw string) (Locale, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", false
	}
	if i := strings.Index(s, "."); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexAny(s, "-_"); i >= 0 {
		s = s[:i]
	}
	l := Locale(s)
	if Valid(l) {
		return l, true
	}
	return "", false
}

// Source identifies which signal produced a locale decision
type Source string

// Detection sources, strongest first
const (
	SourceUser    Source = "user"
	SourceGeo     Source = "geo"
	SourceBrowser Source = "browser"
)

// ValidSource reports whether s is a known detection source
func ValidSource(s Source) bool {
	return s == SourceUser || s == SourceGeo || s == SourceBrowser
}

// matcher is built once over the supported set; order matters because the
// first tag is the matcher's fallback
var matcher = func() language.Matcher {
	sup := Supported()
	tags := make([]language.Tag, 0, len(sup))
	for _, l := range sup {
		tags = append(tags, language.Make(string(l)))
	}
	return language.NewMatcher(tags)
}()

// browser confidence by x/text match quality: exact match beats a
// language-only match beats nothing
func browserConfidence(c language.Confidence) float64 {
	switch c {
	case language.Exact:
		return 0.95
	case language.High:
		return 0.8
	case language.Low:
		return 0.55
	default:
		return 0
	}
}

// FromAcceptLanguage resolves a supported locale from an Accept-Language
// header. A malformed header is treated as no signal, never an error
func FromAcceptLanguage(header string) (Locale, float64) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", 0
	}
	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return "", 0
	}
	tag, idx, conf := matcher.Match(prefs...)
	_ = tag
	score := browserConfidence(conf)
	if score == 0 {
		return "", 0
	}
	sup := Supported()
	if idx < 0 || idx >= len(sup) {
		return "", 0
	}
	return sup[idx], score
}

// chinese speaking country and region codes
var zhCountries = map[string]struct{}{
	"CN": {}, "TW": {}, "HK": {}, "MO": {}, "SG": {},
}

// english speaking country codes with a strong prior
var enCountries = map[string]struct{}{
	"US": {}, "GB": {}, "CA": {}, "AU": {}, "NZ": {}, "IE": {},
}

// FromCountry resolves a supported locale from an ISO 3166-1 alpha-2 country
// code. Unknown or malformed codes yield no signal
func FromCountry(code string) (Locale, float64) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) != 2 {
		return "", 0
	}
	if _, ok := zhCountries[c]; ok {
		return Chinese, 0.7
	}
	if _, ok := enCountries[c]; ok {
		return English, 0.6
	}
	return "", 0
}
