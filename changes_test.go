package parinfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTextChange(t *testing.T) {
	test := func(prev, curr string, expected *Change) func(*testing.T) {
		return func(t *testing.T) {
			assert.Equal(t, expected, ComputeTextChange(prev, curr))
		}
	}

	t.Run("identical", test("(def foo)", "(def foo)", nil))
	t.Run("both empty", test("", "", nil))

	t.Run("single insert", test("(def foo)", "(defx foo)",
		&Change{X: 4, LineNo: 0, OldText: "", NewText: "x"}))

	t.Run("single delete", test("(foo)", "(fo)",
		&Change{X: 3, LineNo: 0, OldText: "o", NewText: ""}))

	t.Run("replace", test("(foo)", "(fqo)",
		&Change{X: 2, LineNo: 0, OldText: "o", NewText: "q"}))

	t.Run("newline insert", test("ab", "a\nb",
		&Change{X: 1, LineNo: 0, OldText: "", NewText: "\n"}))

	t.Run("edit on second line", test("(a\n(b", "(a\n(bc",
		&Change{X: 2, LineNo: 1, OldText: "", NewText: "c"}))

	t.Run("multi-char edit collapses to one span", test("(abc)", "(axyzc)",
		&Change{X: 2, LineNo: 0, OldText: "b", NewText: "xyz"}))

	t.Run("append at end", test("(foo", "(foo)",
		&Change{X: 4, LineNo: 0, OldText: "", NewText: ")"}))

	t.Run("from empty", test("", "x",
		&Change{X: 0, LineNo: 0, OldText: "", NewText: "x"}))

	// the column is measured in display cells, not bytes
	t.Run("wide char before edit", test("(爱)", "(爱x)",
		&Change{X: 3, LineNo: 0, OldText: "", NewText: "x"}))
}

func TestTransformChanges(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, transformChanges(nil))
	})

	t.Run("single-line insert keyed at new end", func(t *testing.T) {
		m := transformChanges([]Change{{X: 4, LineNo: 0, OldText: "", NewText: "xy"}})
		require.Len(t, m, 1)
		delta, ok := m[changeKey{0, 6}]
		require.True(t, ok)
		assert.Equal(t, changeDelta{oldEndX: 4, newEndX: 6}, delta)
	})

	t.Run("deletion", func(t *testing.T) {
		m := transformChanges([]Change{{X: 2, LineNo: 3, OldText: "ab", NewText: ""}})
		delta, ok := m[changeKey{3, 2}]
		require.True(t, ok)
		assert.Equal(t, changeDelta{oldEndX: 4, newEndX: 2}, delta)
	})

	t.Run("multiline new text keys on last line", func(t *testing.T) {
		m := transformChanges([]Change{{X: 5, LineNo: 1, OldText: "", NewText: "\n  "}})
		delta, ok := m[changeKey{2, 2}]
		require.True(t, ok)
		assert.Equal(t, 5, delta.oldEndX)
		assert.Equal(t, 2, delta.newEndX)
	})

	t.Run("wide chars measured in display cells", func(t *testing.T) {
		m := transformChanges([]Change{{X: 0, LineNo: 0, OldText: "", NewText: "爱"}})
		_, ok := m[changeKey{0, 2}]
		assert.True(t, ok)
	})

	t.Run("last writer wins on collision", func(t *testing.T) {
		m := transformChanges([]Change{
			{X: 0, LineNo: 0, OldText: "ab", NewText: "xy"},
			{X: 0, LineNo: 0, OldText: "a", NewText: "xy"},
		})
		require.Len(t, m, 1)
		assert.Equal(t, changeDelta{oldEndX: 1, newEndX: 2}, m[changeKey{0, 2}])
	})
}
