package sets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetBasics(t *testing.T) {
	s := New("a", "b")
	require.True(t, s.Has("a"))
	require.False(t, s.Has("c"))

	s.Add("c")
	require.True(t, s.Has("c"))
	require.Equal(t, 3, s.Len())

	s.Delete("a")
	require.False(t, s.Has("a"))
}

func TestSortedStrings(t *testing.T) {
	s := New("zeta", "alpha", "mid")
	require.Equal(t, []string{"alpha", "mid", "zeta"}, SortedStrings(s))
}
