package search

import (
	"bytes"
	"strings"
	"unicode/utf8"

	models "portal/internal/domain/models/docsystem"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// maxIndexedText caps the text stored per page in the index
const maxIndexedText = 64 << 10

var markdown = goldmark.New()

// Document is the searchable projection of a page
type Document struct {
	ID       string
	APIID    string
	Name     string
	Type     models.PageType
	ParentID string // empty at root
	Title    string
	Tags     []string
	Text     string
	Words    int
}

// BuildDocument projects a page into its index document.
// Markdown is reduced to plain text, its front matter overriding the title;
// swagger specs contribute their info block.
// Content that cannot be parsed is indexed by name only.
func BuildDocument(page *models.Page) *Document {
	doc := &Document{
		ID:    page.ID,
		APIID: page.APIID,
		Name:  page.Name,
		Type:  page.Type,
		Title: page.Name,
	}
	if page.ParentID != nil {
		doc.ParentID = *page.ParentID
	}

	switch page.Type {
	case models.PageTypeMarkdown:
		meta, source := splitFrontMatter([]byte(page.Content))
		title, body := markdownText(source)
		if title != "" {
			doc.Title = title
		}
		doc.Text = body
		if meta != nil {
			if meta.Title != "" {
				doc.Title = meta.Title
			}
			if meta.Description != "" {
				doc.Text = meta.Description + "\n" + doc.Text
			}
			doc.Tags = meta.Tags
		}
	case models.PageTypeSwagger:
		title, description := swaggerInfo([]byte(page.Content))
		if title != "" {
			doc.Title = title
		}
		doc.Text = description
	}

	doc.Words = len(strings.Fields(doc.Text))
	doc.Text = truncateText(doc.Text, maxIndexedText)
	return doc
}

// truncateText cuts s to at most n bytes without splitting a rune
func truncateText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// markdownText returns the first level-1 heading and the document's plain text
func markdownText(source []byte) (string, string) {
	root := markdown.Parser().Parse(text.NewReader(source))

	var title string
	var body strings.Builder
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock && body.Len() > 0 {
				body.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && title == "" {
				title = inlineText(node, source)
			}
		case *ast.Text:
			body.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				body.WriteByte(' ')
			}
		case *ast.String:
			body.Write(node.Value)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				body.Write(line.Value(source))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return title, strings.TrimSpace(collapseBlankLines(body.String()))
}

// inlineText concatenates the text segments below n
func inlineText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

func collapseBlankLines(s string) string {
	for strings.Contains(s, "\n\n") {
		s = strings.ReplaceAll(s, "\n\n", "\n")
	}
	return s
}

// swaggerSpec is the subset of a Swagger/OpenAPI document worth indexing.
// JSON specs parse too, JSON being valid YAML.
type swaggerSpec struct {
	Info struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Version     string `yaml:"version"`
	} `yaml:"info"`
}

// swaggerInfo extracts the title and description of a spec
func swaggerInfo(source []byte) (string, string) {
	var spec swaggerSpec
	if err := yaml.Unmarshal(source, &spec); err != nil {
		return "", ""
	}
	title := strings.TrimSpace(spec.Info.Title)
	if title != "" && spec.Info.Version != "" {
		title += " " + spec.Info.Version
	}
	return title, strings.TrimSpace(spec.Info.Description)
}
