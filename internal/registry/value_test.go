package registry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Accessors(t *testing.T) {
	b, ok := Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	n, ok := Int(7).AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 7.0, n)

	s, ok := String("x").AsString()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = String("x").AsBool()
	assert.False(t, ok)

	assert.True(t, Null().IsNull())
	assert.True(t, Value{}.IsNull())
	assert.True(t, Branch(nil).IsTree())

	tree, ok := Branch(nil).AsTree()
	assert.True(t, ok)
	assert.NotNil(t, tree)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "null", KindNull.String())
	assert.Equal(t, "tree", KindTree.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, Null().Equal(Value{}))
	assert.True(t, Int(1).Equal(Number(1)))
	assert.False(t, Int(1).Equal(String("1")))
	assert.False(t, Bool(false).Equal(Null()))
	assert.True(t, Branch(Tree{"a": Int(1)}).Equal(Branch(Tree{"a": Int(1)})))
	assert.False(t, Branch(Tree{"a": Int(1)}).Equal(Branch(Tree{"a": Int(2)})))
	assert.False(t, Branch(Tree{"a": Int(1)}).Equal(Branch(Tree{"b": Int(1)})))
}

func TestFromAny(t *testing.T) {
	in := map[string]any{
		"s":    "x",
		"f":    1.5,
		"i":    int64(3),
		"u":    uint64(4),
		"b":    false,
		"null": nil,
		"nested": map[any]any{
			"k": int(5),
		},
	}

	v, err := FromAny(in)
	require.NoError(t, err)

	want := Branch(Tree{
		"s":      String("x"),
		"f":      Number(1.5),
		"i":      Int(3),
		"u":      Int(4),
		"b":      Bool(false),
		"null":   Null(),
		"nested": Branch(Tree{"k": Int(5)}),
	})
	assert.True(t, want.Equal(v), "got %v", v.Any())
}

func TestFromAny_RejectsLists(t *testing.T) {
	_, err := FromAny(map[string]any{"hosts": []any{"a", "b"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
	assert.Contains(t, err.Error(), `"hosts"`)
}

func TestValue_JSON(t *testing.T) {
	v := Branch(Tree{
		"db":    Branch(Tree{"host": String("h"), "port": Int(5432)}),
		"debug": Bool(true),
		"none":  Null(),
	})

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"db":{"host":"h","port":5432},"debug":true,"none":null}`, string(data))

	var decoded Value
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, v.Equal(decoded))
}

func TestValue_UnmarshalJSON_Errors(t *testing.T) {
	var v Value
	assert.Error(t, json.Unmarshal([]byte(`{broken`), &v))
	assert.ErrorIs(t, json.Unmarshal([]byte(`[1,2]`), &v), ErrUnsupportedValue)
}
