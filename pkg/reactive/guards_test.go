package reactive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeGuards(t *testing.T) {
	cell := NewCell(1)
	derived := Computed(func() int { return cell.Get() }, cell)
	linked := NewLinked[int, bool](cell, func(int, *Previous[int, bool]) bool { return true })
	constant := NewConst(3)

	cases := []struct {
		name     string
		value    any
		signal   bool
		writable bool
		derived  bool
	}{
		{name: "cell", value: cell, signal: true, writable: true},
		{name: "linked", value: linked, signal: true, writable: true},
		{name: "derived", value: derived, signal: true, derived: true},
		{name: "const", value: constant, signal: true},
		{name: "plain int", value: 3},
		{name: "nil", value: nil},
		{name: "func", value: func() int { return 1 }},
		{name: "struct", value: struct{ Get func() int }{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.signal, IsSignal(tc.value))
			require.Equal(t, tc.writable, IsWritable(tc.value))
			require.Equal(t, tc.derived, IsDerived(tc.value))
		})
	}
}

func TestReadableOf(t *testing.T) {
	cell := NewCell("live")

	r, ok := ReadableOf[string](cell)
	require.True(t, ok)
	cell.Set("updated")
	require.Equal(t, "updated", r.Get())

	r, ok = ReadableOf[string]("plain")
	require.True(t, ok)
	require.Equal(t, "plain", r.Get())
	require.Equal(t, uint64(0), r.Version())

	_, ok = ReadableOf[string](42)
	require.False(t, ok)

	_, ok = ReadableOf[string](nil)
	require.False(t, ok)
}

func TestKindString(t *testing.T) {
	kind, ok := KindOf(Computed(func() int { return 0 }))
	require.True(t, ok)
	require.Equal(t, "derived", kind.String())
	require.Equal(t, "unknown", Kind(0).String())
}
