package search

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// frontMatter is the subset of markdown front matter used for indexing
type frontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

// splitFrontMatter separates a leading "---" YAML block from the markdown body.
// Content without a well-formed block is returned unchanged with a nil header.
func splitFrontMatter(content []byte) (*frontMatter, []byte) {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return nil, content
	}

	lines := bytes.Split(content, []byte("\n"))
	closing := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			closing = i
			break
		}
	}
	if closing == 0 {
		return nil, content
	}

	var meta frontMatter
	if err := yaml.Unmarshal(bytes.Join(lines[1:closing], []byte("\n")), &meta); err != nil {
		return nil, content
	}
	return &meta, bytes.Join(lines[closing+1:], []byte("\n"))
}
