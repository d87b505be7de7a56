package generic

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool_ResetOnPut(t *testing.T) {
	p := NewHotPool(func() *bytes.Buffer { return new(bytes.Buffer) }, (*bytes.Buffer).Reset, 2)

	buf := p.Get()
	require.NotNil(t, buf)
	buf.WriteString("snapshot")
	p.Put(buf)
	require.Zero(t, buf.Len())
}

func TestPool_NoReset(t *testing.T) {
	p := NewPool(func() []int { return make([]int, 0, 4) }, nil)
	s := p.Get()
	require.Equal(t, 4, cap(s))
	p.Put(append(s, 1))
}
