// Package intent holds the keyword heuristics that guess which language a user
// wants generated and which language a text snippet is written in.
package intent

import (
	"regexp"
	"strings"
)

// Language is a lower-cased canonical language tag.
type Language string

const (
	HTML       Language = "html"
	Python     Language = "python"
	JavaScript Language = "javascript"
	Java       Language = "java"
	CPP        Language = "cpp"
	CSharp     Language = "csharp"
	Go         Language = "go"
	PHP        Language = "php"
	SQL        Language = "sql"
	Kotlin     Language = "kotlin"
	Unknown    Language = "unknown"
	Text       Language = "text"
)

type rule struct {
	lang Language
	re   *regexp.Regexp
}

// Order matters: visual/web words win over language names ("react landing page"
// is html), javascript is tested before java.
var promptRules = []rule{
	{HTML, regexp.MustCompile(`\b(html5?|css|website|web ?page|page|landing|portfolio|ui|frontend|front-end|bootstrap|tailwind)\b`)},
	{Python, regexp.MustCompile(`\b(python|py|flask|django|fastapi|pandas)\b`)},
	{JavaScript, regexp.MustCompile(`\b(javascript|js|node|nodejs|typescript|ts|react|vue|angular|express)\b`)},
	{Java, regexp.MustCompile(`\b(java|spring)\b`)},
	{CPP, regexp.MustCompile(`\bc\+\+|\bcpp\b`)},
	{CSharp, regexp.MustCompile(`\bc#|\bcsharp\b|\bdotnet\b`)},
	{Go, regexp.MustCompile(`\b(golang|go)\b`)},
	{PHP, regexp.MustCompile(`\b(php|laravel)\b`)},
}

// GuessIntent guesses the output language requested by a generation prompt.
// It returns Unknown when nothing matches.
func GuessIntent(prompt string) Language {
	p := strings.ToLower(strings.TrimSpace(prompt))
	if p == "" {
		return Unknown
	}
	for _, r := range promptRules {
		if r.re.MatchString(p) {
			return r.lang
		}
	}
	return Unknown
}

var reMarkup = regexp.MustCompile(`(?i)<(!doctype\b|/?[a-z][a-z0-9-]*)(\s[^<>]*)?/?>`)

// LooksLikeMarkup reports whether s contains tag-like substrings.
func LooksLikeMarkup(s string) bool {
	return reMarkup.MatchString(s)
}

// Snippet signals, strongest first. C++ and Java come before the markup check
// because `#include <iostream>`, `vector<int>` and `List<String>` look like tags.
// SQL keywords must be upper case so prose like "select ... from" stays Text.
var snippetRules = []rule{
	{PHP, regexp.MustCompile(`<\?php`)},
	{CPP, regexp.MustCompile(`#include\s*[<"]|\bstd::|\b(vector|map|set|unordered_map|unique_ptr|shared_ptr|array)<\w+(::\w+)?(,\s*\w+)*>`)},
	{Java, regexp.MustCompile(`\bpublic\s+(static\s+)?(final\s+)?class\s+\w+|System\.out\.print(ln)?\(|public\s+static\s+void\s+main`)},
	{Java, regexp.MustCompile(`\b[A-Z]\w*<([A-Z]\w*(,\s*\w+)*)?>|\b\w+<\w+>\s+\w+\s*[=;]`)},
	{HTML, reMarkup},
	{Python, regexp.MustCompile(`(?m)^\s*def\s+\w+\s*\(.*\)\s*(->\s*[\w\[\], .]+)?:|^\s*(import\s+\w+|from\s+[\w.]+\s+import\b)|\bprint\(`)},
	{Kotlin, regexp.MustCompile(`\bfun\s+\w+\s*\(|\bval\s+\w+\s*(:\s*\w+\s*)?=`)},
	{JavaScript, regexp.MustCompile(`console\.log\(|\bfunction\s*\w*\s*\(|\b(const|let|var)\s+\w+\s*=|=>`)},
	{SQL, regexp.MustCompile(`\bSELECT\b[\s\S]+?\bFROM\s+[\w."\x60]+|\bINSERT\s+INTO\b|\bUPDATE\s+\w+\s+SET\b|\bDELETE\s+FROM\b|\bCREATE\s+TABLE\b`)},
	{PHP, regexp.MustCompile(`\$\w+\s*->\s*\w+|\becho\s+["'$]`)},
}

// DetectLanguage tags an arbitrary text snippet for display. Plain prose is Text.
func DetectLanguage(snippet string) Language {
	if strings.TrimSpace(snippet) == "" {
		return Text
	}
	for _, r := range snippetRules {
		if r.re.MatchString(snippet) {
			return r.lang
		}
	}
	return Text
}
