package docsystem

import (
	"fmt"
)

// FolderNode is one directory level that must exist as a folder page.
// ID stays nil until the folder has been persisted.
type FolderNode struct {
	Key       string // full segment path, e.g. "src/doc"
	Name      string // last segment
	ParentKey string // "" when the folder sits at the root
	ID        *string
}

// HasParent reports whether the folder sits below another folder
func (n *FolderNode) HasParent() bool {
	return n.ParentKey != ""
}

// FolderPlan collects the folders an import run must create.
//
// Every distinct directory prefix is planned exactly once, whatever the number of
// listing entries sharing it, and always after its parent, so walking Nodes() in
// order guarantees a parent's ID is known before any child is created.
//
// A plan belongs to a single import run and is not safe for concurrent use.
type FolderPlan struct {
	nodes map[string]*FolderNode
	order []*FolderNode
}

// NewFolderPlan creates an empty plan
func NewFolderPlan() *FolderPlan {
	return &FolderPlan{
		nodes: make(map[string]*FolderNode),
	}
}

// Add plans every prefix of segments not planned yet, shortest first
func (p *FolderPlan) Add(segments []string) {
	parentKey := ""
	for depth := range segments {
		key := folderKey(segments[:depth+1])
		if _, seen := p.nodes[key]; !seen {
			node := &FolderNode{
				Key:       key,
				Name:      segments[depth],
				ParentKey: parentKey,
			}
			p.nodes[key] = node
			p.order = append(p.order, node)
		}
		parentKey = key
	}
}

// Nodes returns the planned folders, parents before children
func (p *FolderPlan) Nodes() []*FolderNode {
	return p.order
}

// Len returns the number of planned folders
func (p *FolderPlan) Len() int {
	return len(p.order)
}

// MarkCreated records the persisted ID of a planned folder
func (p *FolderPlan) MarkCreated(key, id string) error {
	node, ok := p.nodes[key]
	if !ok {
		return fmt.Errorf("folder %q is not planned", key)
	}
	if node.ID != nil {
		return fmt.Errorf("folder %q already created", key)
	}
	node.ID = &id
	return nil
}

// ResolveID returns the persisted ID of the folder identified by key.
// The root ("") resolves to nil without error.
func (p *FolderPlan) ResolveID(key string) (*string, error) {
	if key == "" {
		return nil, nil
	}
	node, ok := p.nodes[key]
	if !ok {
		return nil, fmt.Errorf("folder %q is not planned", key)
	}
	if node.ID == nil {
		return nil, fmt.Errorf("folder %q has not been created yet", key)
	}
	return node.ID, nil
}
