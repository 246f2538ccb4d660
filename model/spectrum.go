package model

// Spectrum is one mass spectrum in the common object model.
type Spectrum struct {
	// ID is the identifier the spectrum was requested by. Spectra living in a peak-list
	// file other than the identification file carry a composite id.
	ID            string
	Index         int
	Title         string
	MSLevel       int
	RetentionTime float64 // seconds
	Precursors    []Precursor
	MZ            []float64
	Intensity     []float64
}

type Precursor struct {
	MZ        float64
	Charge    int
	Intensity float64
}

func (s *Spectrum) PeakCount() int {
	if s == nil {
		return 0
	}
	return len(s.MZ)
}

func (s *Spectrum) IntensitySum() float64 {
	var sum float64
	if s == nil {
		return sum
	}
	for _, v := range s.Intensity {
		sum += v
	}
	return sum
}

// Precursor returns the first precursor, if any.
func (s *Spectrum) Precursor() (Precursor, bool) {
	if s == nil || len(s.Precursors) == 0 {
		return Precursor{}, false
	}
	return s.Precursors[0], true
}

// WithID returns a shallow copy of s re-stamped with id.
func (s *Spectrum) WithID(id string) *Spectrum {
	if s == nil {
		return nil
	}
	cp := *s
	cp.ID = id
	return &cp
}

type Chromatogram struct {
	ID        string
	Time      []float64
	Intensity []float64
}
