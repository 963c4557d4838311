package nucleotide

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFlattensCategories(t *testing.T) {
	reg, err := Load("testdata/registry.json")
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	entry, ok := reg.Lookup("70U")
	require.True(t, ok)
	assert.Equal(t, TypeUracil, entry.Type)
	assert.Equal(t, "Atomic.u.pdb", entry.Template)
	assert.False(t, entry.Type.IsPurine())

	entry, ok = reg.Lookup("A23")
	require.True(t, ok)
	assert.Equal(t, TypeAdenine, entry.Type)
	assert.True(t, entry.Type.IsPurine())
}

func TestLookupMiss(t *testing.T) {
	reg, err := Load("testdata/registry.json")
	require.NoError(t, err)
	_, ok := reg.Lookup("GLC")
	assert.False(t, ok)
}

func TestNilRegistryLookupMisses(t *testing.T) {
	var reg *Registry
	_, ok := reg.Lookup("70U")
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.json")
	require.Error(t, err)
	var regErr *RegistryError
	require.True(t, errors.As(err, &regErr))
}

func TestLoadMalformedJSON(t *testing.T) {
	orig := readFileFn
	defer func() { readFileFn = orig }()
	readFileFn = func(string) ([]byte, error) {
		return []byte("not json"), nil
	}
	_, err := Load("anything")
	require.Error(t, err)
}
