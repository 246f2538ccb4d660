package analysis

const (
	// WaterMass is the monoisotopic mass of H2O added to a residue chain.
	WaterMass = 18.010565
	// ProtonMass is added once per charge.
	ProtonMass = 1.007276
)

// residueMasses are monoisotopic residue masses in daltons.
var residueMasses = map[rune]float64{
	'G': 57.02146,
	'A': 71.03711,
	'S': 87.03203,
	'P': 97.05276,
	'V': 99.06841,
	'T': 101.04768,
	'C': 103.00919,
	'L': 113.08406,
	'I': 113.08406,
	'N': 114.04293,
	'D': 115.02694,
	'Q': 128.05858,
	'K': 128.09496,
	'E': 129.04259,
	'M': 131.04049,
	'H': 137.05891,
	'F': 147.06841,
	'U': 150.95364,
	'R': 156.10111,
	'Y': 163.06333,
	'W': 186.07931,
	'O': 237.14773,
}

// PeptideMass is the neutral monoisotopic mass of sequence plus modification deltas.
// ok is false for an empty sequence or an unknown residue.
func PeptideMass(sequence string, modDeltas ...float64) (mass float64, ok bool) {
	if sequence == "" {
		return 0, false
	}
	for _, r := range sequence {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		m, known := residueMasses[r]
		if !known {
			return 0, false
		}
		mass += m
	}
	for _, d := range modDeltas {
		mass += d
	}
	return mass + WaterMass, true
}

// MZ converts a neutral mass into m/z for a positive charge.
func MZ(mass float64, charge int) float64 {
	return (mass + float64(charge)*ProtonMass) / float64(charge)
}
