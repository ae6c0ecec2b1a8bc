package parse

import (
	"strings"

	"github.com/bryanwahyu/neurolink/internal/domain/ai"
	"github.com/bryanwahyu/neurolink/internal/domain/intent"
)

var knownLanguages = map[string]bool{
	"html": true, "css": true, "javascript": true, "typescript": true, "python": true,
	"java": true, "cpp": true, "c": true, "csharp": true, "go": true, "php": true,
	"sql": true, "kotlin": true, "ruby": true, "rust": true, "swift": true,
	"bash": true, "json": true, "yaml": true, "dart": true, "scala": true, "text": true,
}

var languageAliases = map[string]string{
	"html5": "html", "htm": "html", "html/css": "html", "xhtml": "html",
	"js": "javascript", "node": "javascript", "nodejs": "javascript", "node.js": "javascript",
	"ts": "typescript",
	"py": "python", "python3": "python",
	"c++": "cpp", "cplusplus": "cpp",
	"c#": "csharp", "cs": "csharp",
	"golang": "go",
	"sh": "bash", "shell": "bash",
	"kt": "kotlin", "rb": "ruby", "rs": "rust", "yml": "yaml",
	"plaintext": "text", "txt": "text",
}

// codeGenKeys marks an object as a generation answer.
var codeGenKeys = []string{"language", "lang", "code", "html", "markup"}

// CanonicalLanguage maps a model-reported language onto the lower-cased canonical
// set. ok is false when the tag is absent or unrecognized.
func CanonicalLanguage(lang string) (string, bool) {
	l := strings.ToLower(strings.TrimSpace(lang))
	if alias, found := languageAliases[l]; found {
		return alias, true
	}
	return l, knownLanguages[l]
}

// ParseCodeGen normalizes raw provider text into a CodeGenResult. hint is the
// language guessed from the prompt before the call.
func ParseCodeGen(raw, hint string) (ai.CodeGenResult, error) {
	var res ai.CodeGenResult
	obj, err := decodeObject(raw, codeGenKeys...)
	if err != nil {
		res = codeFromRaw(raw, hint)
	} else {
		res = ai.CodeGenResult{
			Language:      str(obj, "language", "lang"),
			Code:          str(obj, "code"),
			Markup:        str(obj, "html", "markup"),
			PromptSummary: strings.TrimSpace(str(obj, "prompt", "promptSummary", "summary")),
		}
	}

	// markup requested but delivered under "code"
	if hint == string(intent.HTML) && strings.TrimSpace(res.Markup) == "" && intent.LooksLikeMarkup(res.Code) {
		res.Markup = res.Code
		res.Code = ""
	}

	lang, ok := CanonicalLanguage(res.Language)
	if !ok {
		lang = hintOrText(hint)
	}
	if lang == string(intent.Text) && res.Markup != "" && res.Code == "" {
		lang = string(intent.HTML)
	}
	res.Language = lang

	return res, err
}

func codeFromRaw(raw, hint string) ai.CodeGenResult {
	body := StripFences(raw)
	res := ai.CodeGenResult{PromptSummary: Truncate(raw, MaxRawPrefix)}
	if body == "" {
		return res
	}
	if hint == string(intent.HTML) || intent.LooksLikeMarkup(body) {
		res.Markup = body
	} else {
		res.Code = body
	}
	return res
}

func hintOrText(hint string) string {
	if hint == "" || hint == string(intent.Unknown) {
		return string(intent.Text)
	}
	return hint
}
