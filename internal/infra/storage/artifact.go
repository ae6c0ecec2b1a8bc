package storage

import (
	"path"
	"time"
)

// mimeType sederhana per bahasa hasil generate
var contentTypes = map[string]string{
	"html":       "text/html; charset=utf-8",
	"javascript": "text/javascript; charset=utf-8",
	"json":       "application/json",
	"sql":        "application/sql",
}

var extensions = map[string]string{
	"html":       ".html",
	"python":     ".py",
	"javascript": ".js",
	"java":       ".java",
	"cpp":        ".cpp",
	"csharp":     ".cs",
	"go":         ".go",
	"php":        ".php",
	"sql":        ".sql",
	"kotlin":     ".kt",
}

// ContentTypeFor maps a generated language to a MIME type.
func ContentTypeFor(language string) string {
	if ct, ok := contentTypes[language]; ok {
		return ct
	}
	return "text/plain; charset=utf-8"
}

// ArtifactKey builds generated/YYYY/MM/DD/<id><ext>.
func ArtifactKey(id, language string, at time.Time) string {
	ext, ok := extensions[language]
	if !ok {
		ext = ".txt"
	}
	return path.Join("generated", at.UTC().Format("2006/01/02"), id+ext)
}
