// Package parse turns raw provider text into AnalysisResult / CodeGenResult.
//
// Accepted grammar, applied in order:
//
//	body    = [prose] [fence-open] object [fence-close] [prose]
//	fence   = "```" [lang-tag]      (on its own line, or glued to the object)
//	object  = the first balanced "{...}" span; braces inside JSON string
//	          literals (including escaped quotes) do not count
//
// The object is decoded with encoding/json. Anything else is a parse failure,
// which is recovered locally into a well-shaped result built from the raw text.
// Parse functions always return a usable value; a non-nil error only reports
// that the value was repaired and wraps ai.ErrMalformedResponse.
package parse
