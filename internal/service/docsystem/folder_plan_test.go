package docsystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planKeys(p *FolderPlan) []string {
	keys := make([]string, 0, p.Len())
	for _, n := range p.Nodes() {
		keys = append(keys, n.Key)
	}
	return keys
}

func TestFolderPlan_Add(t *testing.T) {
	tests := []struct {
		name     string
		paths    [][]string
		wantKeys []string
	}{
		{
			name:     "root entries plan nothing",
			paths:    [][]string{nil, {}},
			wantKeys: []string{},
		},
		{
			name:     "prefixes planned shortest first",
			paths:    [][]string{{"a", "b", "c"}},
			wantKeys: []string{"a", "a/b", "a/b/c"},
		},
		{
			name:     "shared prefixes planned once",
			paths:    [][]string{{"src", "doc"}, {"src", "doc"}, {"src", "folder.with.dot"}, {"src"}},
			wantKeys: []string{"src", "src/doc", "src/folder.with.dot"},
		},
		{
			name:     "deep path first still puts parents first",
			paths:    [][]string{{"x", "y", "z"}, {"x"}, {"w"}},
			wantKeys: []string{"x", "x/y", "x/y/z", "w"},
		},
		{
			name:     "same name under different parents",
			paths:    [][]string{{"a", "docs"}, {"b", "docs"}},
			wantKeys: []string{"a", "a/docs", "b", "b/docs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := NewFolderPlan()
			for _, segments := range tt.paths {
				plan.Add(segments)
			}

			assert.Equal(t, tt.wantKeys, planKeys(plan))
		})
	}
}

func TestFolderPlan_ParentLinks(t *testing.T) {
	plan := NewFolderPlan()
	plan.Add([]string{"src", "doc"})

	nodes := plan.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, "src", nodes[0].Name)
	assert.False(t, nodes[0].HasParent())
	assert.Equal(t, "doc", nodes[1].Name)
	assert.Equal(t, "src", nodes[1].ParentKey)
	assert.True(t, nodes[1].HasParent())
}

func TestFolderPlan_ResolveAndMark(t *testing.T) {
	plan := NewFolderPlan()
	plan.Add([]string{"src", "doc"})

	rootID, err := plan.ResolveID("")
	require.NoError(t, err)
	assert.Nil(t, rootID)

	_, err = plan.ResolveID("src")
	assert.Error(t, err, "planned but not created")

	_, err = plan.ResolveID("nope")
	assert.Error(t, err, "not planned")

	require.NoError(t, plan.MarkCreated("src", "id-src"))
	id, err := plan.ResolveID("src")
	require.NoError(t, err)
	assert.Equal(t, "id-src", *id)

	assert.Error(t, plan.MarkCreated("src", "again"), "create-once")
	assert.Error(t, plan.MarkCreated("other", "id"), "unplanned")
}

func TestFolderPlan_DirectoryMarkerContributesAncestors(t *testing.T) {
	plan := NewFolderPlan()
	for _, path := range []string{"/src/noFolder2/", "/src/noFolder", "/top/"} {
		plan.Add(ClassifyPath(path).Segments)
	}

	assert.Equal(t, []string{"src"}, planKeys(plan))
}
