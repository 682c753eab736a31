package relation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/relation"
)

func TestParse(t *testing.T) {
	t.Run("Plain Relation", func(t *testing.T) {
		parent, child, err := relation.Parse("A -> B")
		require.NoError(t, err)
		assert.Equal(t, "A", parent)
		assert.Equal(t, "B", child)
	})

	t.Run("Whitespace Is Irrelevant", func(t *testing.T) {
		for _, expr := range []string{"A->B", "  A ->  B ", "\tA\t->\nB"} {
			parent, child, err := relation.Parse(expr)
			require.NoError(t, err, "expr %q", expr)
			assert.Equal(t, "A", parent)
			assert.Equal(t, "B", child)
		}
	})

	t.Run("Root Declaration", func(t *testing.T) {
		parent, child, err := relation.Parse("-> A")
		require.NoError(t, err)
		assert.Equal(t, "", parent)
		assert.Equal(t, "A", child)
	})

	t.Run("Names With Interior Spaces Collapse", func(t *testing.T) {
		parent, child, err := relation.Parse("my proc -> other proc")
		require.NoError(t, err)
		assert.Equal(t, "myproc", parent)
		assert.Equal(t, "otherproc", child)
	})

	t.Run("Missing Delimiter", func(t *testing.T) {
		_, _, err := relation.Parse("AB")
		var relErr *domain.RelationError
		require.ErrorAs(t, err, &relErr)
		assert.Equal(t, 1, relErr.Segments)
	})

	t.Run("Two Delimiters", func(t *testing.T) {
		_, _, err := relation.Parse("A -> B -> C")
		var relErr *domain.RelationError
		require.ErrorAs(t, err, &relErr)
		assert.Equal(t, 3, relErr.Segments)
	})
}

func TestHasDelimiter(t *testing.T) {
	assert.True(t, relation.HasDelimiter("A -> B"))
	assert.True(t, relation.HasDelimiter("->A"))
	assert.False(t, relation.HasDelimiter("A"))
	assert.False(t, relation.HasDelimiter(""))
}

func TestParseParams(t *testing.T) {
	t.Run("Two Pairs", func(t *testing.T) {
		params, err := relation.ParseParams("word=hello|mode=fast")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"word": "hello", "mode": "fast"}, params)
	})

	t.Run("Empty Yields Empty Map", func(t *testing.T) {
		for _, s := range []string{"", "   ", "\t"} {
			params, err := relation.ParseParams(s)
			require.NoError(t, err)
			assert.NotNil(t, params)
			assert.Empty(t, params)
		}
	})

	t.Run("Whitespace Stripped From Keys And Values", func(t *testing.T) {
		params, err := relation.ParseParams(" word = hello world ")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"word": "helloworld"}, params)
	})

	t.Run("Segment Without Equals", func(t *testing.T) {
		_, err := relation.ParseParams("word=hello|broken")
		var malErr *domain.MalformedParameterError
		require.ErrorAs(t, err, &malErr)
		assert.Equal(t, "broken", malErr.Segment)
	})

	t.Run("Trailing Separator", func(t *testing.T) {
		_, err := relation.ParseParams("word=hello|")
		var malErr *domain.MalformedParameterError
		require.ErrorAs(t, err, &malErr)
		assert.Equal(t, "", malErr.Segment)
	})

	t.Run("Extra Equals Ignored", func(t *testing.T) {
		params, err := relation.ParseParams("expr=a=b")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"expr": "a"}, params)
	})

	t.Run("Duplicate Keys Keep Last", func(t *testing.T) {
		params, err := relation.ParseParams("word=first|word=second")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"word": "second"}, params)
	})
}

func TestParseParamList(t *testing.T) {
	t.Run("Preserves Declaration Order", func(t *testing.T) {
		list, err := relation.ParseParamList("z=1|a=2|m=3")
		require.NoError(t, err)
		assert.Equal(t, []relation.Param{
			{Key: "z", Value: "1"},
			{Key: "a", Value: "2"},
			{Key: "m", Value: "3"},
		}, list)
	})

	t.Run("Empty Input", func(t *testing.T) {
		list, err := relation.ParseParamList("  ")
		require.NoError(t, err)
		assert.Nil(t, list)
	})
}

func TestFormatParams(t *testing.T) {
	t.Run("Sorted And Stable", func(t *testing.T) {
		s := relation.FormatParams(map[string]string{"b": "2", "a": "1"})
		assert.Equal(t, "a=1|b=2", s)
	})

	t.Run("Empty Map", func(t *testing.T) {
		assert.Equal(t, "", relation.FormatParams(nil))
		assert.Equal(t, "", relation.FormatParams(map[string]string{}))
	})

	t.Run("Round Trip", func(t *testing.T) {
		original := map[string]string{"word": "hello", "mode": "fast", "n": "3"}
		parsed, err := relation.ParseParams(relation.FormatParams(original))
		require.NoError(t, err)
		assert.Equal(t, original, parsed)
	})
}
