// Package analysis holds the algorithms that work purely on resolved or cached data:
// sequence coverage, protein-group materialization and delta-mass QC sampling.
package analysis

import (
	"github.com/RoaringBitmap/roaring"
	aho "github.com/anknown/ahocorasick"
	"strings"
)

// Evidence is a claimed peptide location. Start and End are 1-based and inclusive;
// End 0 means the peptide length decides it.
type Evidence struct {
	Sequence string
	Start    int
	End      int
}

// Coverage is the per-residue support of a protein sequence.
type Coverage struct {
	Length int
	// Counts holds, per residue, the number of accepted peptide occurrences spanning it.
	Counts []int
	// Covered holds the 0-based positions with a non-zero count.
	Covered *roaring.Bitmap
}

// CoveredResidues is the number of residues with non-zero support.
func (c Coverage) CoveredResidues() int {
	if c.Covered == nil {
		return 0
	}
	return int(c.Covered.GetCardinality())
}

// Percent is covered/length*100, zero for an empty sequence.
func (c Coverage) Percent() float64 {
	if c.Length == 0 {
		return 0
	}
	return float64(c.CoveredResidues()) / float64(c.Length) * 100
}

// SequenceCoverage accepts each evidence at its claimed location when the location is valid and
// otherwise counts every occurrence of the peptide in the sequence. Peptides found nowhere add nothing.
func SequenceCoverage(sequence string, evidence []Evidence) Coverage {
	protein := []rune(strings.ToUpper(sequence))
	cov := Coverage{
		Length:  len(protein),
		Counts:  make([]int, len(protein)),
		Covered: roaring.New(),
	}
	if len(protein) == 0 {
		return cov
	}

	// peptide -> how many evidence items need the exhaustive search
	fallback := make(map[string]int)
	for _, ev := range evidence {
		peptide := []rune(strings.ToUpper(ev.Sequence))
		if len(peptide) == 0 {
			continue
		}
		if start, ok := strictLocation(protein, peptide, ev); ok {
			cov.add(start, len(peptide))
			continue
		}
		fallback[string(peptide)]++
	}

	if len(fallback) > 0 {
		for _, occ := range searchAll(protein, fallback) {
			for i := 0; i < fallback[occ.word]; i++ {
				cov.add(occ.start, len([]rune(occ.word)))
			}
		}
	}

	for i, n := range cov.Counts {
		if n > 0 {
			cov.Covered.Add(uint32(i))
		}
	}
	return cov
}

func (c *Coverage) add(start, length int) {
	for i := start; i < start+length; i++ {
		c.Counts[i]++
	}
}

// strictLocation returns the 0-based start when the claimed span matches the peptide.
func strictLocation(protein, peptide []rune, ev Evidence) (int, bool) {
	end := ev.End
	if end == 0 {
		end = ev.Start + len(peptide) - 1
	}
	if ev.Start < 1 || end < ev.Start || end > len(protein) || end-ev.Start+1 != len(peptide) {
		return 0, false
	}
	if string(protein[ev.Start-1:end]) != string(peptide) {
		return 0, false
	}
	return ev.Start - 1, true
}

type occurrence struct {
	word  string
	start int
}

// searchAll finds every (overlapping) occurrence of the given peptides in one automaton pass.
func searchAll(protein []rune, peptides map[string]int) []occurrence {
	keys := make([][]rune, 0, len(peptides))
	for p := range peptides {
		keys = append(keys, []rune(p))
	}

	m := &aho.Machine{}
	if err := m.Build(keys); err != nil {
		return naiveSearch(protein, peptides)
	}

	terms := m.MultiPatternSearch(protein, false)
	out := make([]occurrence, 0, len(terms))
	for _, term := range terms {
		if start, ok := termStart(protein, term.Word, term.Pos); ok {
			out = append(out, occurrence{word: string(term.Word), start: start})
		}
	}
	return out
}

// termStart normalizes a match position to the 0-based start of word.
func termStart(protein, word []rune, pos int) (int, bool) {
	for _, start := range []int{pos, pos - len(word) + 1} {
		if start >= 0 && start+len(word) <= len(protein) && string(protein[start:start+len(word)]) == string(word) {
			return start, true
		}
	}
	return 0, false
}

func naiveSearch(protein []rune, peptides map[string]int) []occurrence {
	out := make([]occurrence, 0)
	for p := range peptides {
		word := []rune(p)
		for start := 0; start+len(word) <= len(protein); start++ {
			if string(protein[start:start+len(word)]) == p {
				out = append(out, occurrence{word: p, start: start})
			}
		}
	}
	return out
}
