package extract

import (
	_ "embed"
	"os"
	"regexp"
	"strings"

	"github.com/agentstation/restock/pkg/errors"
)

//go:embed prompt.md
var promptTemplate string

var promptBlock = regexp.MustCompile("(?s)```[a-zA-Z]*\\r?\\n(.*?)\\r?\\n```")

// DefaultPrompt returns the built-in invoice extraction prompt.
func DefaultPrompt() string {
	prompt, err := ParsePrompt(promptTemplate)
	if err != nil {
		panic(err)
	}
	return prompt
}

// LoadPrompt reads a markdown prompt template and returns the text of its
// first fenced block.
func LoadPrompt(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator supplied prompt path
	if err != nil {
		return "", errors.WrapIO("read", path, err)
	}
	prompt, err := ParsePrompt(string(data))
	if err != nil {
		return "", errors.WrapParse("markdown", path, err)
	}
	return prompt, nil
}

// ParsePrompt extracts the first fenced block of a markdown template.
func ParsePrompt(markdown string) (string, error) {
	m := promptBlock.FindStringSubmatch(markdown)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return "", errors.New("no prompt between ``` fences")
	}
	return m[1], nil
}
