package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/tree"
)

func TestBuild_LinearChain(t *testing.T) {
	rows := []domain.Row{
		{Process: "-> fastqc", Label: "QC", Module: "echo", Params: "word=hello"},
		{Process: "fastqc -> align", Label: "Align", Module: "join", Params: "word=world"},
		{Process: "align -> call", Label: "Call", Module: "join", Params: "word=vars"},
	}

	root, err := tree.Build(rows)
	require.NoError(t, err)

	assert.Equal(t, "fastqc", root.Name)
	assert.True(t, root.IsRoot())
	require.Len(t, root.Children, 1)

	align := root.Children[0]
	assert.Equal(t, "align", align.Name)
	assert.Equal(t, "Align", align.Label)
	assert.Equal(t, "join", align.Module)
	assert.Same(t, root, align.Parent)

	require.Len(t, align.Children, 1)
	call := align.Children[0]
	assert.Equal(t, "call", call.Name)
	assert.Equal(t, "fastqc -> align -> call", call.Path())
}

func TestBuild_KwargsInjection(t *testing.T) {
	rows := []domain.Row{
		{Process: "-> fastqc", Label: "QC", Module: "echo", Params: "word=hello"},
		{Process: "fastqc -> align", Label: "Align", Module: "join", Params: "word=world|mode=fast"},
	}

	root, err := tree.Build(rows)
	require.NoError(t, err)

	t.Run("Root Gets Child But No Parent", func(t *testing.T) {
		assert.Equal(t, map[string]string{
			"word":  "hello",
			"child": "fastqc",
		}, root.Kwargs)
	})

	t.Run("Child Gets Both", func(t *testing.T) {
		align := root.Children[0]
		assert.Equal(t, map[string]string{
			"word":   "world",
			"mode":   "fast",
			"child":  "align",
			"parent": "fastqc",
		}, align.Kwargs)
	})
}

func TestBuild_ImplicitRoot(t *testing.T) {
	// No "-> X" declaration: the only parentless node is still the root.
	rows := []domain.Row{
		{Process: "fastqc -> align", Label: "Align", Module: "join"},
		{Process: "align -> call", Label: "Call", Module: "join"},
	}

	root, err := tree.Build(rows)
	require.NoError(t, err)
	assert.Equal(t, "fastqc", root.Name)
	// fastqc was only ever named on a left side, so no row decorated it.
	assert.Equal(t, "", root.Label)
	assert.Nil(t, root.Kwargs)
}

func TestBuild_LastRowWins(t *testing.T) {
	rows := []domain.Row{
		{Process: "-> fastqc", Label: "First", Module: "echo", Params: "word=a"},
		{Process: "-> fastqc", Label: "Second", Module: "echo", Params: "word=b"},
	}

	root, err := tree.Build(rows)
	require.NoError(t, err)
	assert.Equal(t, "Second", root.Label)
	assert.Equal(t, "word=b", root.Params)
	assert.Equal(t, "b", root.Kwargs["word"])
}

func TestBuild_ReparentingLastRelationWins(t *testing.T) {
	rows := []domain.Row{
		{Process: "-> root", Label: "Root", Module: "echo"},
		{Process: "root -> a", Label: "A", Module: "join"},
		{Process: "root -> b", Label: "B", Module: "join"},
		{Process: "a -> c", Label: "C", Module: "join"},
		{Process: "b -> c", Label: "C", Module: "join"},
	}

	root, err := tree.Build(rows)
	require.NoError(t, err)

	var a, b *domain.Node
	for _, child := range root.Children {
		switch child.Name {
		case "a":
			a = child
		case "b":
			b = child
		}
	}
	require.NotNil(t, a)
	require.NotNil(t, b)

	assert.Empty(t, a.Children, "c should have been detached from a")
	require.Len(t, b.Children, 1)
	assert.Equal(t, "c", b.Children[0].Name)
	assert.Equal(t, "b", b.Children[0].Kwargs["parent"])
}

func TestBuild_RootRedeclarationDiscardsLinks(t *testing.T) {
	// Redeclaring a node as root replaces it wholesale: its old subtree
	// stays attached to the stale instance and silently drops out.
	rows := []domain.Row{
		{Process: "-> fastqc", Label: "QC", Module: "echo"},
		{Process: "fastqc -> align", Label: "Align", Module: "join"},
		{Process: "-> fastqc", Label: "QC again", Module: "echo"},
	}

	root, err := tree.Build(rows)
	require.NoError(t, err)
	assert.Equal(t, "fastqc", root.Name)
	assert.Equal(t, "QC again", root.Label)
	assert.Empty(t, root.Children)
}

func TestBuild_ZeroRoots(t *testing.T) {
	rows := []domain.Row{
		{Process: "a -> b", Label: "B", Module: "join"},
		{Process: "b -> a", Label: "A", Module: "join"},
	}

	_, err := tree.Build(rows)
	assert.ErrorIs(t, err, domain.ErrNoRoot)
}

func TestBuild_MultipleRoots(t *testing.T) {
	rows := []domain.Row{
		{Process: "-> one", Label: "One", Module: "echo"},
		{Process: "-> two", Label: "Two", Module: "echo"},
	}

	_, err := tree.Build(rows)
	var multiErr *domain.MultipleRootsError
	require.ErrorAs(t, err, &multiErr)
	assert.Equal(t, []string{"one", "two"}, multiErr.Roots)
}

func TestBuild_RowWithoutRelationIsFatal(t *testing.T) {
	// The linking pass skips such rows, but the decoration pass visits
	// every row and cannot resolve a child for them.
	rows := []domain.Row{
		{Process: "-> fastqc", Label: "QC", Module: "echo"},
		{Process: "standalone", Label: "X", Module: "echo"},
	}

	_, err := tree.Build(rows)
	var relErr *domain.RelationError
	require.ErrorAs(t, err, &relErr)
}

func TestBuild_MalformedParams(t *testing.T) {
	rows := []domain.Row{
		{Process: "-> fastqc", Label: "QC", Module: "echo", Params: "word"},
	}

	_, err := tree.Build(rows)
	var malErr *domain.MalformedParameterError
	require.ErrorAs(t, err, &malErr)
	assert.Equal(t, "word", malErr.Segment)
}

func TestBuild_EmptyInput(t *testing.T) {
	_, err := tree.Build(nil)
	assert.ErrorIs(t, err, domain.ErrNoRoot)
}
