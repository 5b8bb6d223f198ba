package linguahub

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// LocaleToVendor maps forum locale codes to the language codes the vendor
// translation endpoint accepts. Locales without an entry fall back to
// their base language code.
var LocaleToVendor = map[string]string{
	"en_US": "en",
	"en_GB": "en",
	"de_DE": "de",
	"es_ES": "es",
	"es_MX": "es",
	"fr_FR": "fr",
	"it_IT": "it",
	"ja_JP": "ja",
	"ko_KR": "ko",
	"nl_NL": "nl",
	"pl_PL": "pl",
	"pt_BR": "pt",
	"pt_PT": "pt",
	"ru_RU": "ru",
	"sv_SE": "sv",
	"tr_TR": "tr",
	"uk_UA": "uk",
	"vi_VN": "vi",
	"zh_CN": "zh-Hans",
	"zh_TW": "zh-Hant",
	"ar_SA": "ar",
	"he_IL": "he",
	"fa_IR": "fa",
}

// VendorCode resolves the vendor language code for a forum locale.
// Overrides, when non-nil, take precedence over the built-in table.
func VendorCode(locale string, overrides map[string]string) string {
	locale = NormalizeLocale(locale)
	if overrides != nil {
		if code, ok := overrides[locale]; ok {
			return code
		}
	}
	if code, ok := LocaleToVendor[locale]; ok {
		return code
	}
	return baseLang(locale)
}

// LoadLocaleOverrides reads a YAML mapping of forum locale to vendor
// language code, for sites that run locales the built-in table does not
// cover.
//
// File format:
//
//	eo: eo
//	zh_CN: zh-CHS
func LoadLocaleOverrides(r io.Reader) (map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading locale overrides: %w", err)
	}

	raw := make(map[string]string)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing locale overrides: %w", err)
	}

	overrides := make(map[string]string, len(raw))
	for locale, code := range raw {
		overrides[NormalizeLocale(locale)] = code
	}
	return overrides, nil
}

// NormalizeLocale converts a locale code to the standard format
// (e.g., "es-ES" → "es_ES").
func NormalizeLocale(locale string) string {
	return strings.ReplaceAll(locale, "-", "_")
}

// ToHTMLLang converts a locale code to HTML lang attribute format
// (e.g., "es_ES" → "es-ES").
func ToHTMLLang(locale string) string {
	return strings.ReplaceAll(locale, "_", "-")
}

// GetDirection returns "rtl" for right-to-left languages, "ltr" otherwise.
func GetDirection(locale string) string {
	if RTLLanguages[baseLang(locale)] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL returns true if the locale uses right-to-left text direction.
func IsRTL(locale string) bool {
	return GetDirection(locale) == "rtl"
}

// SameBaseLang reports whether two locale or language codes share the same
// base language (e.g., "pt_BR" and "pt" do).
func SameBaseLang(a, b string) bool {
	return baseLang(a) == baseLang(b)
}

// baseLang extracts the lowercase base language code (e.g., "en" from "en_US").
func baseLang(locale string) string {
	locale = NormalizeLocale(locale)
	if i := strings.IndexAny(locale, "_"); i >= 0 {
		locale = locale[:i]
	}
	return strings.ToLower(locale)
}
