package docsystem

import (
	"strings"
	"unicode"
	"unicode/utf8"

	models "portal/internal/domain/models/docsystem"
)

// PathKind is the document kind inferred from a listed path
type PathKind string

const (
	// KindNone marks a directory marker: the path names no file
	KindNone PathKind = "NONE"
	// KindUnsupported marks a file whose extension maps to no page type
	KindUnsupported PathKind = "UNSUPPORTED"
	KindMarkdown    PathKind = PathKind(models.PageTypeMarkdown)
	KindSwagger     PathKind = PathKind(models.PageTypeSwagger)
)

// extensionKinds maps lowercase file extensions to the page kind they produce
var extensionKinds = map[string]PathKind{
	".md":       KindMarkdown,
	".markdown": KindMarkdown,
	".json":     KindSwagger,
	".yaml":     KindSwagger,
	".yml":      KindSwagger,
}

// ClassifiedPath is the classification of one listing entry
type ClassifiedPath struct {
	Path       string   // raw listing entry
	Segments   []string // directory segments, leaf file excluded
	LeafName   string   // file name without its recognized extension
	Kind       PathKind
	Degenerate bool // path was malformed and degraded to unsupported
}

// FolderKey identifies the containing folder; "" is the root
func (c ClassifiedPath) FolderKey() string {
	return folderKey(c.Segments)
}

// Supported reports whether the path produces a page
func (c ClassifiedPath) Supported() bool {
	return c.Kind == KindMarkdown || c.Kind == KindSwagger
}

// PageType returns the page type of a supported path
func (c ClassifiedPath) PageType() models.PageType {
	return models.PageType(c.Kind)
}

// ClassifyPath splits a listing entry into its directory segments and leaf,
// and infers the document kind from the leaf's extension (case-insensitive).
//
// Examples:
//   - "/src/doc/sub.m11.md" → segments [src doc], leaf "sub.m11", MARKDOWN
//   - "/src/noFolder2/"     → segments [src], leaf "noFolder2", NONE
//   - "/src/noFolder"       → segments [src], leaf "noFolder", UNSUPPORTED
//
// A directory marker (trailing slash) lists a directory holding no listed file, so
// only its ancestors become folders; the marked directory itself produces nothing.
// Empty and "." segments are dropped. Malformed input (invalid UTF-8, control
// characters, "..") never fails: the entry degrades to UNSUPPORTED named after the
// raw path, and only the directory segments before the offending one are kept.
func ClassifyPath(path string) ClassifiedPath {
	isDirMarker := path == "" || strings.HasSuffix(path, "/")

	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment == "" || segment == "." {
			continue
		}
		segments = append(segments, segment)
	}

	for i, segment := range segments {
		if isDegenerateSegment(segment) {
			return ClassifiedPath{
				Path:       path,
				Segments:   cloneSegments(segments[:i]),
				LeafName:   path,
				Kind:       KindUnsupported,
				Degenerate: true,
			}
		}
	}

	if len(segments) == 0 {
		return ClassifiedPath{Path: path, Kind: KindNone}
	}
	if isDirMarker {
		return ClassifiedPath{
			Path:     path,
			Segments: cloneSegments(segments[:len(segments)-1]),
			LeafName: segments[len(segments)-1],
			Kind:     KindNone,
		}
	}

	leaf := segments[len(segments)-1]
	result := ClassifiedPath{
		Path:     path,
		Segments: cloneSegments(segments[:len(segments)-1]),
		LeafName: leaf,
		Kind:     KindUnsupported,
	}

	dot := strings.LastIndexByte(leaf, '.')
	if dot <= 0 {
		return result
	}
	kind, ok := extensionKinds[strings.ToLower(leaf[dot:])]
	if !ok {
		return result
	}

	result.LeafName = leaf[:dot]
	result.Kind = kind
	return result
}

func isDegenerateSegment(segment string) bool {
	if segment == ".." || !utf8.ValidString(segment) {
		return true
	}
	return strings.IndexFunc(segment, unicode.IsControl) >= 0
}

// folderKey joins directory segments into the per-run folder identity
func folderKey(segments []string) string {
	return strings.Join(segments, "/")
}

// cloneSegments returns a copy that never aliases the caller's slice; nil when empty
func cloneSegments(segments []string) []string {
	if len(segments) == 0 {
		return nil
	}
	out := make([]string, len(segments))
	copy(out, segments)
	return out
}
