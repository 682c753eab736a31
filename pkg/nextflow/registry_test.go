package nextflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/nextflow"
	"github.com/aretw0/espalier/pkg/tree"
)

func buildTestTree(t *testing.T) *domain.Node {
	t.Helper()
	root, err := tree.Build([]domain.Row{
		{Process: "-> A", Label: "Echo", Module: "echo", Params: "word=hello"},
		{Process: "A -> B", Label: "Join", Module: "join", Params: "word=world"},
	})
	require.NoError(t, err)
	return root
}

func TestDefaultRegistry_Echo(t *testing.T) {
	root := buildTestTree(t)

	block, err := nextflow.DefaultRegistry().Render(root)
	require.NoError(t, err)

	expected := "process A {\n" +
		"    output:\n" +
		"    stdout into A\n" +
		"\n" +
		"    \"\"\"\n" +
		"    printf hello\n" +
		"    \"\"\"\n" +
		"}\n"
	assert.Equal(t, expected, block)
}

func TestDefaultRegistry_Join(t *testing.T) {
	root := buildTestTree(t)
	join := root.Children[0]

	block, err := nextflow.DefaultRegistry().Render(join)
	require.NoError(t, err)

	expected := "process B {\n" +
		"    input:\n" +
		"    val x from A\n" +
		"\n" +
		"    output:\n" +
		"    stdout into B\n" +
		"\n" +
		"    \"\"\"\n" +
		"    printf \"${x}_world\"\n" +
		"    \"\"\"\n" +
		"}\n"
	assert.Equal(t, expected, block)
}

func TestRegistry_UnknownModule(t *testing.T) {
	root, err := tree.Build([]domain.Row{
		{Process: "-> A", Label: "A", Module: "nonexistent"},
	})
	require.NoError(t, err)

	_, err = nextflow.DefaultRegistry().Render(root)
	var unknownErr *domain.UnknownModuleError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "nonexistent", unknownErr.Module)
	assert.Equal(t, "A", unknownErr.Node)
}

func TestRegistry_MissingRequiredParameter(t *testing.T) {
	root, err := tree.Build([]domain.Row{
		{Process: "-> A", Label: "A", Module: "echo"},
	})
	require.NoError(t, err)

	_, err = nextflow.DefaultRegistry().Render(root)
	var missingErr *domain.MissingParameterError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "word", missingErr.Key)
	assert.Equal(t, "echo", missingErr.Module)
}

func TestRegistry_RegisterOverwrites(t *testing.T) {
	reg := nextflow.DefaultRegistry()
	require.NoError(t, reg.Register("echo", "process {{.child}} { /* custom */ }"))

	root, err := tree.Build([]domain.Row{
		{Process: "-> A", Label: "A", Module: "echo"},
	})
	require.NoError(t, err)

	block, renderErr := reg.Render(root)
	require.NoError(t, renderErr)
	assert.Contains(t, block, "custom")

	// Overwriting must not duplicate the name.
	assert.Equal(t, []string{"echo", "join"}, reg.Names())
}

func TestRegistry_UndeclaredTemplateKeyFails(t *testing.T) {
	reg := nextflow.NewRegistry()
	require.NoError(t, reg.Register("odd", "process {{.child}} uses {{.missing}}"))

	root, err := tree.Build([]domain.Row{
		{Process: "-> A", Label: "A", Module: "odd"},
	})
	require.NoError(t, err)

	_, renderErr := reg.Render(root)
	assert.Error(t, renderErr, "missingkey=error must reject unresolved placeholders")
}

func TestRegistry_InvalidTemplate(t *testing.T) {
	reg := nextflow.NewRegistry()
	err := reg.Register("broken", "process {{.child")
	assert.Error(t, err)
}
