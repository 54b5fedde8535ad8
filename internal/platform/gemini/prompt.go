package gemini

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"github.com/phrazzld/crocodile-words/internal/generation"
)

// defaultPromptTemplate is used when no template file is configured.
const defaultPromptTemplate = `Generate {{.Count}} distinct nouns on the theme "{{.Theme}}" for the game Crocodile, ` +
	`where a player shows the word with gestures only. ` +
	`Reply with a JSON object of the form {"words": ["..."]} and nothing else.`

// promptData represents the data passed to the prompt template
type promptData struct {
	Theme string
	Count int
}

// loadPromptTemplate parses the template at path, or the built-in one when path is empty.
func loadPromptTemplate(path string) (*template.Template, error) {
	text := defaultPromptTemplate
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				generation.ErrInvalidConfig, path, err)
		}
		text = string(content)
	}

	tmpl, err := template.New("words").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", generation.ErrInvalidConfig, err)
	}
	return tmpl, nil
}

func renderPrompt(tmpl *template.Template, theme string, count int) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, promptData{Theme: theme, Count: count}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
