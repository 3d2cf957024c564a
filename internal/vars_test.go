package internal_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/internal"
)

func TestVars(t *testing.T) {
	t.Parallel()

	v := internal.NewVars()
	v.Set("b", 1)
	v.Set("a", "x")
	v.Set("b", 2)

	require.Equal(t, []string{"b", "a"}, v.Keys())
	got, ok := v.Get("b")
	require.True(t, ok)
	require.Equal(t, 2, got)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	require.Equal(t, `{"b":2,"a":"x"}`, string(out))

	without := v.Without("b", "missing")
	require.Equal(t, []string{"a"}, without.Keys())
	require.True(t, v.Has("b"), "Without must not touch the original")

	c := v.Clone()
	c.Set("c", true)
	c.Delete("a")
	require.Equal(t, 2, v.Len())
	require.Equal(t, []string{"b", "c"}, c.Keys())

	m := v.Map()
	m["z"] = 1
	require.False(t, v.Has("z"))

	empty, err := json.Marshal(internal.NewVars())
	require.NoError(t, err)
	require.Equal(t, `{}`, string(empty))
}
