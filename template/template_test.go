package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTemplate = `ATOM      1 N1   ADE A   1      -1.291   4.498   0.000  1.00  0.00           N
ATOM      2 C2   ADE A   1      -2.462   3.662   0.000  1.00  0.00           C
`

func TestParse(t *testing.T) {
	tmpl, err := Parse(strings.NewReader(sampleTemplate))
	require.NoError(t, err)
	assert.Len(t, tmpl.Atoms, 2)

	coord, ok := tmpl.Coord("N1")
	require.True(t, ok)
	assert.InDelta(t, -1.291, coord.X, 1e-6)
	assert.InDelta(t, 4.498, coord.Y, 1e-6)
}

func TestParseRejectsEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.Error(t, err)
}

func TestCacheLoadsOnce(t *testing.T) {
	c := NewCache()
	t1, err := c.Load("testdata/Atomic_A.pdb")
	require.NoError(t, err)
	assert.Equal(t, 9, len(t1.Atoms))

	t2, err := c.Load("testdata/Atomic_A.pdb")
	require.NoError(t, err)
	assert.Same(t, t1, t2)
}

func TestCacheLoadMissingFile(t *testing.T) {
	c := NewCache()
	_, err := c.Load("testdata/does-not-exist.pdb")
	assert.Error(t, err)
}
