package analysis

import (
	"context"
	"errors"
	"github.com/Borislavv/go-ash-msdata/internal/shared/random"
	"github.com/Borislavv/go-ash-msdata/model"
	"github.com/smartystreets/goconvey/convey"
	"math"
	"testing"
)

type fakeQC struct {
	buckets      map[string][]string
	order        []string
	observations map[string]*Observation
	precursors   map[string][2]float64
	err          error
}

func (f *fakeQC) Buckets(context.Context) ([]string, error) {
	return f.order, f.err
}

func (f *fakeQC) Items(_ context.Context, bucket string) ([]string, error) {
	return f.buckets[bucket], nil
}

func (f *fakeQC) Observation(_ context.Context, _, item string) (*Observation, error) {
	return f.observations[item], nil
}

func (f *fakeQC) Precursor(_ context.Context, spectrumID string) (int, float64, error) {
	p, ok := f.precursors[spectrumID]
	if !ok {
		return 0, -1, nil
	}
	return int(p[0]), p[1], nil
}

func TestPeptideMass(t *testing.T) {
	convey.Convey("monoisotopic masses", t, func() {
		mass, ok := PeptideMass("PEPTIDEK")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(mass, convey.ShouldAlmostEqual, 927.454905, 1e-6)
		convey.So(MZ(mass, 2), convey.ShouldAlmostEqual, 464.7347285, 1e-6)

		withMod, _ := PeptideMass("peptidek", 15.994915)
		convey.So(withMod-mass, convey.ShouldAlmostEqual, 15.994915, 1e-9)

		_, ok = PeptideMass("PEPXIDE")
		convey.So(ok, convey.ShouldBeFalse)
		_, ok = PeptideMass("")
		convey.So(ok, convey.ShouldBeFalse)
	})
}

func TestSampleDeltaMass(t *testing.T) {
	mass, _ := PeptideMass("PEPTIDEK")
	theo := MZ(mass, 2)

	convey.Convey("every draw of a fully recorded item yields a delta", t, func() {
		src := &fakeQC{
			order:   []string{"P1"},
			buckets: map[string][]string{"P1": {"psm_1"}},
			observations: map[string]*Observation{
				"psm_1": {Sequence: "PEPTIDEK", Charge: 2, ExperimentalMZ: theo + 0.01},
			},
		}
		report, err := SampleDeltaMass(context.Background(), random.New(1), src, 5)

		convey.So(err, convey.ShouldBeNil)
		convey.So(report.Requested, convey.ShouldEqual, 5)
		convey.So(len(report.Deltas), convey.ShouldEqual, 5)
		convey.So(report.Failures, convey.ShouldEqual, 0)
		convey.So(report.ErrorRate, convey.ShouldEqual, 0.0)
		convey.So(report.Deltas[0].DeltaMZ, convey.ShouldAlmostEqual, 0.01, 1e-9)
	})

	convey.Convey("missing PSM values fall back to the spectrum precursor", t, func() {
		src := &fakeQC{
			order:   []string{"P1"},
			buckets: map[string][]string{"P1": {"psm_1"}},
			observations: map[string]*Observation{
				"psm_1": {Sequence: "PEPTIDEK", ExperimentalMZ: -1, SpectrumID: "0!SD_1"},
			},
			precursors: map[string][2]float64{"0!SD_1": {2, theo}},
		}
		report, err := SampleDeltaMass(context.Background(), random.New(1), src, 3)

		convey.So(err, convey.ShouldBeNil)
		convey.So(report.Failures, convey.ShouldEqual, 0)
		convey.So(report.Deltas[0].Charge, convey.ShouldEqual, 2)
		convey.So(math.Abs(report.Deltas[0].DeltaPPM), convey.ShouldBeLessThan, 1e-6)
	})

	convey.Convey("undeterminable charge and empty buckets count as failures", t, func() {
		src := &fakeQC{
			order:   []string{"P1", "P2"},
			buckets: map[string][]string{"P1": {"psm_1"}, "P2": {}},
			observations: map[string]*Observation{
				"psm_1": {Sequence: "PEPTIDEK", ExperimentalMZ: theo},
			},
		}
		report, err := SampleDeltaMass(context.Background(), random.New(9), src, 20)

		convey.So(err, convey.ShouldBeNil)
		convey.So(report.Failures, convey.ShouldEqual, 20)
		convey.So(report.ErrorRate, convey.ShouldEqual, 1.0)
		convey.So(report.Reasons[FailureNoCharge]+report.Reasons[FailureEmptyBucket], convey.ShouldEqual, 20)
	})

	convey.Convey("no buckets fails every requested sample", t, func() {
		report, err := SampleDeltaMass(context.Background(), random.New(1), &fakeQC{}, 4)

		convey.So(err, convey.ShouldBeNil)
		convey.So(report.Failures, convey.ShouldEqual, 4)
		convey.So(report.Reasons[FailureNoBuckets], convey.ShouldEqual, 4)
		convey.So(report.ErrorRate, convey.ShouldEqual, 1.0)
	})

	convey.Convey("a non positive count samples nothing", t, func() {
		report, err := SampleDeltaMass(context.Background(), random.New(1), &fakeQC{}, 0)

		convey.So(err, convey.ShouldBeNil)
		convey.So(report.Requested, convey.ShouldEqual, 0)
		convey.So(report.ErrorRate, convey.ShouldEqual, 0.0)
	})

	convey.Convey("unknown residues and unresolved items are failures", t, func() {
		src := &fakeQC{
			order:   []string{"P1"},
			buckets: map[string][]string{"P1": {"psm_x", "psm_y"}},
			observations: map[string]*Observation{
				"psm_x": {Sequence: "PEPBIDE", Charge: 2, ExperimentalMZ: 400},
				"psm_y": nil,
			},
		}
		report, err := SampleDeltaMass(context.Background(), random.New(5), src, 10)

		convey.So(err, convey.ShouldBeNil)
		convey.So(report.Failures, convey.ShouldEqual, 10)
		convey.So(report.Reasons[FailureUnknownMass]+report.Reasons[FailureUnresolved], convey.ShouldEqual, 10)
	})

	convey.Convey("source errors abort the run", t, func() {
		boom := errors.New("boom")
		_, err := SampleDeltaMass(context.Background(), random.New(1), &fakeQC{err: boom}, 3)
		convey.So(errors.Is(err, boom), convey.ShouldBeTrue)
	})

	convey.Convey("modification deltas shift the theoretical m/z", t, func() {
		src := &fakeQC{
			order:   []string{"P1"},
			buckets: map[string][]string{"P1": {"psm_1"}},
			observations: map[string]*Observation{
				"psm_1": {
					Sequence:       "PEPTIDEK",
					Charge:         2,
					ExperimentalMZ: theo,
					Modifications:  []model.Modification{{MonoisotopicDelta: 2}},
				},
			},
		}
		report, err := SampleDeltaMass(context.Background(), random.New(1), src, 1)

		convey.So(err, convey.ShouldBeNil)
		convey.So(report.Deltas[0].DeltaMZ, convey.ShouldAlmostEqual, -1.0, 1e-9)
	})
}
