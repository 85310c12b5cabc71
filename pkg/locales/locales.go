// Package locales holds the user-facing strings the backend sends directly
// to clients, keyed by message and language. The frontend carries its own
// translations; only server-chosen messages live here.
package locales

import (
	_ "embed"
	"encoding/json"
	"log"
)

//go:embed locales.json
var localesJSON []byte

// DefaultLanguage is used when the requested language has no translation.
const DefaultLanguage = "tr"

var messages map[string]map[string]string

func init() {
	if err := json.Unmarshal(localesJSON, &messages); err != nil {
		log.Fatalf("failed to parse locales.json: %v", err)
	}
}

// Message returns the translation of key for lang, falling back to the
// default language, then to the key itself.
func Message(key, lang string) string {
	byLang, ok := messages[key]
	if !ok {
		return key
	}
	if msg, ok := byLang[lang]; ok {
		return msg
	}
	if msg, ok := byLang[DefaultLanguage]; ok {
		return msg
	}
	return key
}

// LimitReached is the quota-exceeded message for the given language.
func LimitReached(lang string) string {
	return Message("limit_reached", lang)
}

// UsageNotRecorded is the partial-failure warning sent when a generation
// succeeded but the usage counter could not be updated.
func UsageNotRecorded(lang string) string {
	return Message("usage_not_recorded", lang)
}
