// Package lang classifies job posting text into one of the supported CV languages.
package lang

import (
	"regexp"
	"strings"
)

// Language is the language a CV is generated in.
type Language int

const (
	English Language = iota
	Polish
)

const polishDiacritics = "ąćęłńóśżźĄĆĘŁŃÓŚŻŹ"

var polishWords = regexp.MustCompile(`(?i)\b(i|oraz|pracownik|firma|wynagrodzenie|szukamy|zatrudnimy)\b`)

// Detect returns Polish when text carries Polish diacritics or common Polish
// function words, and English otherwise (including for empty text).
func Detect(text string) Language {
	if text == "" {
		return English
	}
	if strings.ContainsAny(text, polishDiacritics) {
		return Polish
	}
	if polishWords.MatchString(text) {
		return Polish
	}
	return English
}

// Parse maps a language name or code back to a Language.
func Parse(s string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "english", "en":
		return English, true
	case "polish", "pl":
		return Polish, true
	default:
		return English, false
	}
}

func (l Language) String() string {
	switch l {
	case Polish:
		return "polish"
	default:
		return "english"
	}
}

// Code returns the short uppercase code used in log lines.
func (l Language) Code() string {
	switch l {
	case Polish:
		return "PL"
	default:
		return "EN"
	}
}

// DisplayName is the capitalized name used inside prompts.
func (l Language) DisplayName() string {
	switch l {
	case Polish:
		return "Polish"
	default:
		return "English"
	}
}

// All lists the supported languages in a stable order.
func All() []Language {
	return []Language{English, Polish}
}
