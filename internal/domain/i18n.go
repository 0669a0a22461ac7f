package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Header labels are looked up by their English text
const (
	headerKey   = "Key"
	headerValue = "Value"
)

var headerLanguages = []language.Tag{
	language.English,
	language.German,
	language.Italian,
	language.French,
}

var headerMatcher = language.NewMatcher(headerLanguages)

var headerCatalog = func() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	translations := map[language.Tag][2]string{
		language.English: {"Key", "Value"},
		language.German:  {"Schlüssel", "Wert"},
		language.Italian: {"Chiave", "Valore"},
		language.French:  {"Clé", "Valeur"},
	}
	for tag, t := range translations {
		_ = b.SetString(tag, headerKey, t[0])
		_ = b.SetString(tag, headerValue, t[1])
	}
	return b
}()

// headerPrinter returns a printer for the closest supported language
func headerPrinter(tag language.Tag) *message.Printer {
	_, i, _ := headerMatcher.Match(tag)
	return message.NewPrinter(headerLanguages[i], message.Catalog(headerCatalog))
}

// ParseLanguage parses a BCP 47 tag such as "de" or "it-IT", falling back
// to English when the tag is empty or malformed.
func ParseLanguage(s string) language.Tag {
	if s == "" {
		return language.English
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	return tag
}
