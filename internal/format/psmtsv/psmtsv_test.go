package psmtsv

import (
	"context"
	"github.com/Borislavv/go-ash-msdata/internal/cache"
	"github.com/Borislavv/go-ash-msdata/internal/source"
	"github.com/Borislavv/go-ash-msdata/internal/testutil"
	"github.com/Borislavv/go-ash-msdata/model"
	"github.com/stretchr/testify/require"
	"testing"
)

func open(t *testing.T) *Reader {
	t.Helper()
	r, err := Open(context.Background(), testutil.WriteFile(t, "ids.tsv", testutil.PSMTable))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r.(*Reader)
}

// TestReader_Directives verifies that metadata, spectra data and groups are indexed.
func TestReader_Directives(t *testing.T) {
	r := open(t)

	require.Equal(t, "TestEngine 1.0", r.Meta()["software"])
	require.Len(t, r.SpectraData(), 2)
	require.Equal(t, "/data/run1.mgf", r.SpectraData()[0].Location)

	require.Equal(t, []string{"G1", "G2"}, r.GroupIDs())
	g1 := r.Groups()["G1"]
	require.Contains(t, g1, "P1")
	require.Nil(t, g1["P1"])
	require.Equal(t, []string{"psm_3"}, g1["P2"])
}

// TestReader_ReadByID verifies that a protein record carries its header and every row.
func TestReader_ReadByID(t *testing.T) {
	r := open(t)
	ctx := context.Background()

	var ids []string
	require.NoError(t, r.StreamAllIDs(ctx, source.RecordProtein, func(id string) error {
		ids = append(ids, id)
		return nil
	}))
	require.Equal(t, []string{"P1", "P2", "P3"}, ids)

	rec, err := r.ReadByID(ctx, source.RecordProtein, "P1")
	require.NoError(t, err)
	p := rec.(*ProteinRecord)
	require.Equal(t, "MKTAYIAKQR", p.Header.Sequence)
	require.Len(t, p.Rows, 2)
	require.Equal(t, "psm_2", p.Rows[1].PSMID)

	_, err = r.ReadByID(ctx, source.RecordProtein, "P9")
	require.True(t, source.IsNotFound(err))
	_, err = r.ReadByID(ctx, source.RecordSpectrum, "0")
	require.True(t, source.IsNotFound(err))
}

// TestOpen_RequiresColumns verifies that a header without required columns is rejected.
func TestOpen_RequiresColumns(t *testing.T) {
	path := testutil.WriteFile(t, "bad.tsv", "psm_id\tsequence\nx\tPEPTIDE\n")
	_, err := Open(context.Background(), path)
	require.Error(t, err)

	path = testutil.WriteFile(t, "empty.tsv", "#meta\tk\tv\n")
	_, err = Open(context.Background(), path)
	require.Error(t, err)
}

// TestTransformer_Protein verifies protein and peptide conversion.
func TestTransformer_Protein(t *testing.T) {
	r := open(t)
	rec, err := r.ReadByID(context.Background(), source.RecordProtein, "P1")
	require.NoError(t, err)

	p, err := Transformer{}.Protein(rec)
	require.NoError(t, err)
	require.Equal(t, "sp|P1|TEST", p.Accession)
	require.InDelta(t, 42.5, p.Score, 1e-9)
	require.InDelta(t, 10.0, p.Threshold, 1e-9)
	require.False(t, p.Decoy)
	require.Equal(t, []string{"psm_1", "psm_2"}, p.PeptideIDs())

	pep := p.Peptides[0]
	require.Equal(t, "0!SD_1", pep.SpectrumRef)
	require.Equal(t, 3, pep.Evidence.Start)
	require.Equal(t, 6, pep.Evidence.End)
	require.Equal(t, -1.0, pep.ExperimentalMZ)
	require.True(t, pep.PassThreshold)

	pep = p.Peptides[1]
	require.Zero(t, pep.Charge)
	require.Len(t, pep.Modifications, 1)
	require.Equal(t, "UNIMOD:35", pep.Modifications[0].Accession)

	rec, err = r.ReadByID(context.Background(), source.RecordProtein, "P3")
	require.NoError(t, err)
	p, err = Transformer{}.Protein(rec)
	require.NoError(t, err)
	require.Equal(t, -1.0, p.Score)
	require.Empty(t, p.Peptides)
}

// TestParseModifications verifies the modification list notation.
func TestParseModifications(t *testing.T) {
	mods, err := ParseModifications("")
	require.NoError(t, err)
	require.Empty(t, mods)

	mods, err = ParseModifications("1,Oxidation,UNIMOD:35,15.994915; 0,Acetyl,UNIMOD:1,42.010565")
	require.NoError(t, err)
	require.Equal(t, []model.Modification{
		{Location: 1, Name: "Oxidation", Accession: "UNIMOD:35", MonoisotopicDelta: 15.994915},
		{Location: 0, Name: "Acetyl", Accession: "UNIMOD:1", MonoisotopicDelta: 42.010565},
	}, mods)

	_, err = ParseModifications("1,Oxidation")
	require.Error(t, err)
	_, err = ParseModifications("x,Oxidation,UNIMOD:35,1")
	require.Error(t, err)
}

// TestStrategy_Populate verifies ids and relationship entries written by the eager pass.
func TestStrategy_Populate(t *testing.T) {
	r := open(t)
	c := cache.New()
	require.NoError(t, Strategy{}.Populate(context.Background(), r, c))

	proteins, ok := cache.ProteinIDs.Get(c)
	require.True(t, ok)
	require.Equal(t, []string{"P1", "P2", "P3"}, proteins)

	peps, ok := cache.ProteinToPeptides.Get(c, "P3")
	require.True(t, ok)
	require.Empty(t, peps)

	spectrum, ok := cache.PeptideToSpectrum.Get(c, "psm_3")
	require.True(t, ok)
	require.Equal(t, "1!SD_2", spectrum)

	files, ok := cache.FileToSpectrumIDs.Get(c, "SD_1")
	require.True(t, ok)
	require.Equal(t, []string{"0!SD_1", "2!SD_1"}, files)

	groups, ok := cache.ProteinGroupIDs.Get(c)
	require.True(t, ok)
	require.Equal(t, []string{"G1", "G2"}, groups)

	meta, ok := cache.IdentificationMetadata.Get(c)
	require.True(t, ok)
	require.Equal(t, []string{"uniprot_human"}, meta.SearchDatabases)
	require.Equal(t, 3, meta.NumPeptides)

	_, ok = cache.Proteins.Get(c, "P1")
	require.False(t, ok)
}
