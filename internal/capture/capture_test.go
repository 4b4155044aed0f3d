package capture

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeRecordPromotesDuplicateLabelToArray(t *testing.T) {
	s := newScope()
	s.Record("tag", Leaf("a"))
	s.Record("tag", Leaf("b"))
	v := s.obj.Get("tag")
	require.NotNil(t, v)
	require.Len(t, v.Array, 2)
	assert.Equal(t, "a", v.Array[0].Leaf)
	assert.Equal(t, "b", v.Array[1].Leaf)
}

func TestScopeRecordSuppressesUnderscore(t *testing.T) {
	s := newScope()
	s.Record("_", Leaf("ignored"))
	assert.Empty(t, s.obj.Keys())
}

func TestStackMergeIntoLabel(t *testing.T) {
	st := NewStack()
	st.Push()
	st.Top().Record("name", Leaf("Wolf"))
	st.MergeInto("item")

	root := st.Root()
	require.NotNil(t, root.Object)
	item := root.Object.Get("item")
	require.NotNil(t, item)
	require.NotNil(t, item.Object)
	assert.Equal(t, "Wolf", item.Object.Get("name").Leaf)
}

func TestStackMergeIntoFlat(t *testing.T) {
	st := NewStack()
	st.Push()
	st.Top().Record("name", Leaf("Wolf"))
	st.MergeInto("")

	root := st.Root()
	assert.Equal(t, "Wolf", root.Object.Get("name").Leaf)
}

func TestStackDiscard(t *testing.T) {
	st := NewStack()
	st.Top().Record("kept", Leaf("yes"))
	st.Push()
	st.Top().Record("lost", Leaf("no"))
	st.Discard()

	root := st.Root()
	assert.Equal(t, "yes", root.Object.Get("kept").Leaf)
	assert.Nil(t, root.Object.Get("lost"))
}

func TestValueMarshalJSONPreservesOrder(t *testing.T) {
	st := NewStack()
	st.Top().Record("z", Leaf("1"))
	st.Top().Record("a", Leaf("2"))

	b, err := json.Marshal(st.Root())
	require.NoError(t, err)
	assert.JSONEq(t, `{"z":"1","a":"2"}`, string(b))
	assert.Equal(t, `{"z":"1","a":"2"}`, string(b))
}
