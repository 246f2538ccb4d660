package source

import (
	"github.com/stretchr/testify/require"
	"testing"
)

// TestRegistry_Resolve picks formats by explicit name or by extension.
func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry(
		Format{Name: "MGF", Extensions: []string{".mgf"}, PeakList: true},
		Format{Name: "psmtsv", Extensions: []string{"tsv", ".psm"}},
	)

	f, err := r.Resolve("/data/run01.MGF", "")
	require.NoError(t, err)
	require.Equal(t, "MGF", f.Name)

	f, err = r.Resolve("/data/run01.psm.gz", "")
	require.NoError(t, err)
	require.Equal(t, "psmtsv", f.Name)

	f, err = r.Resolve("/data/whatever.bin", "mgf")
	require.NoError(t, err)
	require.True(t, f.PeakList)

	_, err = r.Resolve("/data/whatever.bin", "")
	require.Error(t, err)

	_, err = r.Resolve("/data/run01.mgf", "mzML")
	require.Error(t, err)
}
