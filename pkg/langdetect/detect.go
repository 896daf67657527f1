// Package langdetect guesses the programming language of a code block body.
// The renderer uses it to put a "language-X" class on fenced code.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// sample is a code body prepared once for all heuristics.
type sample struct {
	trimmed []byte
	text    string
}

// heuristic recognises one language from unmistakable markers.
type heuristic struct {
	lang  string
	match func(s sample) bool
}

// heuristics run in order; the first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var heuristics = []heuristic{
	{"go", func(s sample) bool {
		return bytes.HasPrefix(s.trimmed, []byte("package "))
	}},
	{"python", func(s sample) bool {
		return (strings.Contains(s.text, "def ") && strings.Contains(s.text, "):")) ||
			strings.Contains(s.text, "__name__")
	}},
	{"html", func(s sample) bool {
		lower := bytes.ToLower(s.trimmed)
		return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.Contains(lower, []byte("<html"))
	}},
	{"json", func(s sample) bool {
		return (bytes.HasPrefix(s.trimmed, []byte("{")) || bytes.HasPrefix(s.trimmed, []byte("["))) &&
			bytes.Contains(s.trimmed, []byte(`"`)) && !bytes.Contains(s.trimmed, []byte("=>"))
	}},
	{"sql", func(s sample) bool {
		upper := strings.ToUpper(string(s.trimmed))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(s sample) bool {
		return strings.Contains(s.text, "fn main()") || strings.Contains(s.text, "let mut ")
	}},
	{"javascript", func(s sample) bool {
		return strings.Contains(s.text, "=>") || strings.Contains(s.text, "console.log")
	}},
}

// classifierCandidates limits the enry classifier to common fence languages.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript", "Ruby", "Rust",
	"Java", "C", "C++", "SQL", "JSON", "YAML", "HTML", "CSS",
}

// Detect returns a lowercase language tag for content and whether the
// guess is confident enough to use.
func Detect(content []byte) (string, bool) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return "", false
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe && lang != "" {
		return normalize(lang), true
	}

	s := sample{trimmed: trimmed, text: string(content)}
	for _, h := range heuristics {
		if h.match(s) {
			return h.lang, true
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang), true
	}

	return "", false
}

// normalize converts enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
