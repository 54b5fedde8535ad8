// Package gemini implements a generation.Backend using Google's Gemini API through
// the google.golang.org/genai SDK.
//
// Words are requested as a JSON object of the form {"words": [...]}. Responses that
// are not valid JSON are parsed as a plain word list, so models that ignore the
// response MIME type still yield words.
//
// The API key is only read at construction time. A backend with an empty key, or
// one disabled in configuration, reports unavailable without any network I/O.
package gemini
