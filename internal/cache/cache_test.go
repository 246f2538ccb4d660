package cache

import (
	"github.com/Borislavv/go-ash-msdata/model"
	"github.com/stretchr/testify/require"
	"testing"
)

// TestCache_Get_AbsentVsNegative verifies absent keys differ from stored nils.
func TestCache_Get_AbsentVsNegative(t *testing.T) {
	c := New()

	_, found := Spectra.Get(c, "42")
	require.False(t, found, "never stored key must be absent")

	Spectra.Store(c, "42", nil)
	s, found := Spectra.Get(c, "42")
	require.True(t, found, "stored nil must be a hit")
	require.Nil(t, s)
}

// TestCache_Store_LaterSuccessOverwritesNegative lets a success replace a negative, never the reverse.
func TestCache_Store_LaterSuccessOverwritesNegative(t *testing.T) {
	c := New()

	Spectra.Store(c, "42", nil)
	require.True(t, Spectra.Store(c, "42", &model.Spectrum{ID: "42"}))

	require.False(t, Spectra.Store(c, "42", nil))
	s, found := Spectra.Get(c, "42")
	require.True(t, found)
	require.Equal(t, "42", s.ID)
}

// TestCache_Store_WriteOnceCollections keeps the first stored collection.
func TestCache_Store_WriteOnceCollections(t *testing.T) {
	c := New()

	require.True(t, ProteinIDs.Store(c, []string{"P1", "P2"}))
	require.False(t, ProteinIDs.Store(c, []string{"P3"}))

	ids, found := ProteinIDs.Get(c)
	require.True(t, found)
	require.Equal(t, []string{"P1", "P2"}, ids)

	_, _, stores, ignored := c.Metrics()
	require.Equal(t, int64(1), stores)
	require.Equal(t, int64(1), ignored)
}

// TestCache_GetBatch_Alignment verifies batch[i] == get(id_i), absent entries included.
func TestCache_GetBatch_Alignment(t *testing.T) {
	c := New()
	PeakCounts.StoreBatch(c, map[string]int{"a": 10, "c": 0})

	ids := []string{"a", "b", "c", "a"}
	batch := PeakCounts.GetBatch(c, ids)
	require.Len(t, batch, len(ids))

	for i, id := range ids {
		v, found := PeakCounts.Get(c, id)
		require.Equal(t, found, batch[i].Found, id)
		require.Equal(t, v, batch[i].Value, id)
	}
	require.False(t, batch[1].Found)
	require.True(t, batch[2].Found)
}

// TestCache_PairKeys verifies peptides are unique only within their protein.
func TestCache_PairKeys(t *testing.T) {
	c := New()
	Peptides.Store(c, "P1", "psm_1", &model.Peptide{ID: "psm_1", ProteinID: "P1"})
	Peptides.Store(c, "P2", "psm_1", &model.Peptide{ID: "psm_1", ProteinID: "P2"})

	p1, found := Peptides.Get(c, "P1", "psm_1")
	require.True(t, found)
	require.Equal(t, "P1", p1.ProteinID)

	p2, found := Peptides.Get(c, "P2", "psm_1")
	require.True(t, found)
	require.Equal(t, "P2", p2.ProteinID)

	_, found = Peptides.Get(c, "P3", "psm_1")
	require.False(t, found)
}

// TestCache_ClearKind invalidates one kind only.
func TestCache_ClearKind(t *testing.T) {
	c := New()
	Spectra.Store(c, "42", &model.Spectrum{ID: "42"})
	SpectrumIDs.Store(c, []string{"42"})
	ProteinIDs.Store(c, []string{"P1"})

	c.ClearKind(KindSpectrum)
	c.ClearKind(KindSpectrumIDs)

	require.False(t, c.HasEntry(KindSpectrum))
	require.False(t, c.HasEntry(KindSpectrumIDs))
	require.True(t, c.HasEntry(KindProteinIDs))
	require.Equal(t, int64(1), c.Len())

	// a cleared write-once kind can be populated again
	require.True(t, SpectrumIDs.Store(c, []string{"43"}))

	c.Clear()
	require.Equal(t, int64(0), c.Len())
}

// TestNewPerID_ArityMismatchPanics verifies descriptors assert the kind's arity.
func TestNewPerID_ArityMismatchPanics(t *testing.T) {
	require.Panics(t, func() { NewPerID[*model.Peptide](KindPeptide) })
	require.Panics(t, func() { NewSingle[[]string](KindSpectrum) })
	require.NotPanics(t, func() { NewPerPair[*model.Peptide](KindPeptide) })
}

// TestKind_Shapes verifies every kind declares a name and a supported arity.
func TestKind_Shapes(t *testing.T) {
	for _, k := range Kinds() {
		require.NotEqual(t, "unknown", k.String())
		require.LessOrEqual(t, k.Arity(), 2)
	}
	require.True(t, KindSpectrumIDs.WriteOnce())
	require.True(t, KindPeptideToSpectrum.WriteOnce())
	require.False(t, KindSpectrum.WriteOnce())
	require.False(t, KindPrecursorCharge.WriteOnce())
	require.False(t, KindReportedMZ.WriteOnce())
	require.Equal(t, "reported_charge", KindReportedCharge.String())
}
