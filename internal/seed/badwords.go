package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed badwords.yml
var defaultBadWordsYAML []byte

type badWordsFile struct {
	Words []string `yaml:"words"`
}

// DefaultBadWords returns the embedded profanity list.
func DefaultBadWords() ([]string, error) {
	return parseBadWords(defaultBadWordsYAML)
}

func parseBadWords(data []byte) ([]string, error) {
	var f badWordsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse bad words yaml: %w", err)
	}
	return f.Words, nil
}
