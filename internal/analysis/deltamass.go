package analysis

import (
	"context"
	"github.com/Borislavv/go-ash-msdata/model"
)

// Observation is the PSM-level data needed to compute a mass delta.
// Charge 0 and non-positive ExperimentalMZ mean the value is not recorded on the PSM.
type Observation struct {
	Sequence       string
	Modifications  []model.Modification
	Charge         int
	ExperimentalMZ float64
	SpectrumID     string
}

// QCSource exposes identification buckets (proteins) and their items (peptides).
// Observation returns nil for an item that cannot be resolved.
// Precursor returns charge 0 and a non-positive m/z when the spectrum does not record them.
type QCSource interface {
	Buckets(ctx context.Context) ([]string, error)
	Items(ctx context.Context, bucket string) ([]string, error)
	Observation(ctx context.Context, bucket, item string) (*Observation, error)
	Precursor(ctx context.Context, spectrumID string) (charge int, mz float64, err error)
}

// Intn draws a uniform index in [0,n).
type Intn interface {
	Intn(n int) int
}

type FailureReason string

const (
	FailureNoBuckets      FailureReason = "no_buckets"
	FailureEmptyBucket    FailureReason = "empty_bucket"
	FailureUnresolved     FailureReason = "unresolved_item"
	FailureUnknownMass    FailureReason = "unknown_mass"
	FailureNoCharge       FailureReason = "no_charge"
	FailureNoExperimental FailureReason = "no_experimental_mz"
)

type MassDelta struct {
	Bucket         string
	Item           string
	Charge         int
	TheoreticalMZ  float64
	ExperimentalMZ float64
	DeltaMZ        float64
	DeltaPPM       float64
}

type DeltaMassReport struct {
	Requested int
	Deltas    []MassDelta
	Failures  int
	Reasons   map[FailureReason]int
	// ErrorRate is Failures/Requested.
	ErrorRate float64
}

func (r *DeltaMassReport) fail(reason FailureReason) {
	r.Failures++
	r.Reasons[reason]++
}

// SampleDeltaMass draws k buckets independently, one item from each drawn bucket, and compares
// the item's theoretical m/z with its experimental one. An item whose charge, m/z or mass cannot
// be determined counts as a failure. Source errors abort the run.
func SampleDeltaMass(ctx context.Context, rng Intn, src QCSource, k int) (*DeltaMassReport, error) {
	report := &DeltaMassReport{
		Requested: max(k, 0),
		Deltas:    make([]MassDelta, 0, max(k, 0)),
		Reasons:   make(map[FailureReason]int),
	}
	if k <= 0 {
		return report, nil
	}

	buckets, err := src.Buckets(ctx)
	if err != nil {
		return nil, err
	}
	if len(buckets) == 0 {
		report.Failures = k
		report.Reasons[FailureNoBuckets] = k
		report.ErrorRate = 1
		return report, nil
	}

	for i := 0; i < k; i++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		bucket := buckets[rng.Intn(len(buckets))]

		items, err := src.Items(ctx, bucket)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			report.fail(FailureEmptyBucket)
			continue
		}
		item := items[rng.Intn(len(items))]

		delta, reason, err := measure(ctx, src, bucket, item)
		if err != nil {
			return nil, err
		}
		if reason != "" {
			report.fail(reason)
			continue
		}
		report.Deltas = append(report.Deltas, delta)
	}

	report.ErrorRate = float64(report.Failures) / float64(k)
	return report, nil
}

func measure(ctx context.Context, src QCSource, bucket, item string) (MassDelta, FailureReason, error) {
	obs, err := src.Observation(ctx, bucket, item)
	if err != nil {
		return MassDelta{}, "", err
	}
	if obs == nil {
		return MassDelta{}, FailureUnresolved, nil
	}

	deltas := make([]float64, 0, len(obs.Modifications))
	for _, m := range obs.Modifications {
		deltas = append(deltas, m.MonoisotopicDelta)
	}
	mass, ok := PeptideMass(obs.Sequence, deltas...)
	if !ok {
		return MassDelta{}, FailureUnknownMass, nil
	}

	charge, expMZ := obs.Charge, obs.ExperimentalMZ
	if (charge <= 0 || expMZ <= 0) && obs.SpectrumID != "" {
		precCharge, precMZ, err := src.Precursor(ctx, obs.SpectrumID)
		if err != nil {
			return MassDelta{}, "", err
		}
		if charge <= 0 {
			charge = precCharge
		}
		if expMZ <= 0 {
			expMZ = precMZ
		}
	}
	if charge <= 0 {
		return MassDelta{}, FailureNoCharge, nil
	}
	if expMZ <= 0 {
		return MassDelta{}, FailureNoExperimental, nil
	}

	theo := MZ(mass, charge)
	return MassDelta{
		Bucket:         bucket,
		Item:           item,
		Charge:         charge,
		TheoreticalMZ:  theo,
		ExperimentalMZ: expMZ,
		DeltaMZ:        expMZ - theo,
		DeltaPPM:       (expMZ - theo) / theo * 1e6,
	}, "", nil
}
