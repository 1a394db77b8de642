package autotranslate

import "strings"

// providerLangCodes maps internal language codes to the external provider's
// codes where the primary subtag is not enough.
var providerLangCodes = map[string]string{
	"en_US":  "en",
	"fr_FR":  "fr",
	"de_DE":  "de",
	"es_ES":  "es",
	"it_IT":  "it",
	"pt_BR":  "pt",
	"pt_PT":  "pt",
	"nl_NL":  "nl",
	"ru_RU":  "ru",
	"ja_JP":  "ja",
	"zh_CN":  "zh-CN",
	"zh_TW":  "zh-TW",
	"ko_KR":  "ko",
	"ar_001": "ar",
	"tr_TR":  "tr",
	"pl_PL":  "pl",
	"sv_SE":  "sv",
	"da_DK":  "da",
	"fi_FI":  "fi",
	"no_NO":  "no",
	"cs_CZ":  "cs",
	"hu_HU":  "hu",
	"ro_RO":  "ro",
	"uk_UA":  "uk",
	"vi_VN":  "vi",
	"th_TH":  "th",
	"id_ID":  "id",
	"ms_MY":  "ms",
}

// ProviderLangCode converts an internal language code to the external
// provider's code. Unknown codes default to the primary subtag before the
// underscore, e.g. "gl_ES" becomes "gl".
func ProviderLangCode(code string) string {
	code = strings.TrimSpace(code)
	if mapped, ok := providerLangCodes[code]; ok {
		return mapped
	}
	if idx := strings.Index(code, "_"); idx > 0 {
		return code[:idx]
	}
	return code
}
