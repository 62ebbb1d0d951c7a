package domain

import "strings"

// Language is one entry of the fixed language reference table.
type Language struct {
	Code string `json:"code"` // ISO 639-1 code
	Name string `json:"name"` // English display name
}

// Languages is the reference table used for autocomplete suggestions.
// The order is deliberate and not alphabetical: the languages most common in
// home catalogs come first, and suggestion ordering preserves this order
// within both the "already used" and the "remaining" groups.
//
//nolint:gochecknoglobals // Static reference table
var Languages = []Language{
	{Code: "ru", Name: "Russian"},
	{Code: "en", Name: "English"},
	{Code: "zh", Name: "Chinese"},
	{Code: "de", Name: "German"},
	{Code: "fr", Name: "French"},
	{Code: "es", Name: "Spanish"},
	{Code: "it", Name: "Italian"},
	{Code: "pt", Name: "Portuguese"},
	{Code: "ja", Name: "Japanese"},
	{Code: "ko", Name: "Korean"},
	{Code: "ar", Name: "Arabic"},
	{Code: "hi", Name: "Hindi"},
	{Code: "nl", Name: "Dutch"},
	{Code: "pl", Name: "Polish"},
	{Code: "uk", Name: "Ukrainian"},
	{Code: "cs", Name: "Czech"},
	{Code: "sk", Name: "Slovak"},
	{Code: "bg", Name: "Bulgarian"},
	{Code: "sr", Name: "Serbian"},
	{Code: "hr", Name: "Croatian"},
	{Code: "sv", Name: "Swedish"},
	{Code: "no", Name: "Norwegian"},
	{Code: "da", Name: "Danish"},
	{Code: "fi", Name: "Finnish"},
	{Code: "et", Name: "Estonian"},
	{Code: "lv", Name: "Latvian"},
	{Code: "lt", Name: "Lithuanian"},
	{Code: "tr", Name: "Turkish"},
	{Code: "el", Name: "Greek"},
	{Code: "he", Name: "Hebrew"},
	{Code: "fa", Name: "Persian"},
	{Code: "hu", Name: "Hungarian"},
	{Code: "ro", Name: "Romanian"},
	{Code: "ka", Name: "Georgian"},
	{Code: "hy", Name: "Armenian"},
	{Code: "kk", Name: "Kazakh"},
	{Code: "uz", Name: "Uzbek"},
	{Code: "az", Name: "Azerbaijani"},
	{Code: "th", Name: "Thai"},
	{Code: "vi", Name: "Vietnamese"},
	{Code: "id", Name: "Indonesian"},
	{Code: "la", Name: "Latin"},
}

// LanguageByCode looks up a reference entry case-insensitively.
func LanguageByCode(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, l := range Languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}
